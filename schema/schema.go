package schema

import (
	"errors"
	"fmt"
	"go/ast"
	"math/big"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/jdql/utils"
)

var (
	// ErrUnsupportedDataType unsupported data type
	ErrUnsupportedDataType = errors.New("unsupported data type")
	// ErrUnknownAttribute property is not an attribute of the entity
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidOperation operator can't be applied to the attribute's data type
	ErrInvalidOperation = errors.New("operator not applicable to attribute")
)

// DataType attribute data type, empty when unknown
type DataType string

const (
	Bool       DataType = "bool"
	Int        DataType = "int"
	Uint       DataType = "uint"
	Float      DataType = "float"
	String     DataType = "string"
	Time       DataType = "time"
	Collection DataType = "collection"
	Embeddable DataType = "embeddable"
)

// Attribute entity attribute
type Attribute struct {
	// Name jdql path, e.g. address.zipCode
	Name string
	// FieldName go field path, e.g. Address.ZipCode
	FieldName string
	DataType  DataType
	FieldType reflect.Type
}

// Entity entity name override, like TableName in gorm models
type Entity interface {
	EntityName() string
}

type Schema struct {
	Name             string
	ModelType        reflect.Type
	Attributes       []*Attribute
	AttributesByName map[string]*Attribute
}

func (schema Schema) String() string {
	if schema.ModelType == nil {
		return schema.Name
	}
	return fmt.Sprintf("%v.%v", schema.ModelType.PkgPath(), schema.ModelType.Name())
}

// LookUpAttribute find attribute by jdql path
func (schema Schema) LookUpAttribute(name string) *Attribute {
	return schema.AttributesByName[name]
}

// AttributeNames sorted attribute names
func (schema Schema) AttributeNames() []string {
	names := make([]string, 0, len(schema.AttributesByName))
	for name := range schema.AttributesByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	bigIntType   = reflect.TypeOf(big.Int{})
	bigFloatType = reflect.TypeOf(big.Float{})
	entityType   = reflect.TypeOf((*Entity)(nil)).Elem()
)

// Parse get entity attributes from a struct, pointers and slices of structs are dereferenced
func Parse(dest interface{}, cacheStore *sync.Map, namer Namer) (*Schema, error) {
	if dest == nil {
		return nil, fmt.Errorf("%w: %+v", ErrUnsupportedDataType, dest)
	}

	modelType := reflect.ValueOf(dest).Type()
	for modelType.Kind() == reflect.Slice || modelType.Kind() == reflect.Array || modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	if modelType.Kind() != reflect.Struct {
		if modelType.PkgPath() == "" {
			return nil, fmt.Errorf("%w: %+v", ErrUnsupportedDataType, dest)
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrUnsupportedDataType, modelType.PkgPath(), modelType.Name())
	}

	if v, ok := cacheStore.Load(modelType); ok {
		return v.(*Schema), nil
	}

	name := namer.EntityName(modelType.Name())
	if reflect.PtrTo(modelType).Implements(entityType) {
		if entity, ok := reflect.New(modelType).Interface().(Entity); ok {
			name = entity.EntityName()
		}
	}

	schema := &Schema{
		Name:             name,
		ModelType:        modelType,
		AttributesByName: map[string]*Attribute{},
	}

	schema.parseFields(modelType, "", "", namer, map[reflect.Type]bool{modelType: true})

	if v, loaded := cacheStore.LoadOrStore(modelType, schema); loaded {
		return v.(*Schema), nil
	}
	return schema, nil
}

// New schema from attribute names only, data types are unknown so only names are validated
func New(entity string, attributes ...string) *Schema {
	schema := &Schema{Name: entity, AttributesByName: map[string]*Attribute{}}
	for _, name := range attributes {
		if name = strings.TrimSpace(name); name != "" {
			schema.addAttribute(&Attribute{Name: name})
		}
	}
	return schema
}

func (schema *Schema) addAttribute(attr *Attribute) {
	if _, ok := schema.AttributesByName[attr.Name]; ok {
		return
	}
	schema.Attributes = append(schema.Attributes, attr)
	schema.AttributesByName[attr.Name] = attr
}

func (schema *Schema) parseFields(modelType reflect.Type, prefix, fieldPrefix string, namer Namer, visiting map[reflect.Type]bool) {
	for i := 0; i < modelType.NumField(); i++ {
		fieldStruct := modelType.Field(i)
		if !ast.IsExported(fieldStruct.Name) {
			continue
		}

		tagSetting := ParseTagSetting(fieldStruct.Tag.Get("jdql"), ";")
		if _, ok := tagSetting["-"]; ok {
			continue
		}

		fieldType := fieldStruct.Type
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		dataType := dataTypeOf(fieldType)
		_, embedded := tagSetting["EMBEDDED"]
		if fieldStruct.Anonymous && dataType == Embeddable {
			embedded = true
		}

		if embedded && dataType == Embeddable {
			if !visiting[fieldType] {
				visiting[fieldType] = true
				schema.parseFields(fieldType, prefix, fieldPrefix+fieldStruct.Name+".", namer, visiting)
				delete(visiting, fieldType)
			}
			continue
		}

		path := utils.Decapitalize(fieldStruct.Name)
		if v, ok := tagSetting["NAME"]; ok && v != "" {
			path = v
		}
		path = prefix + path

		schema.addAttribute(&Attribute{
			Name:      namer.AttributeName(schema.Name, path),
			FieldName: fieldPrefix + fieldStruct.Name,
			DataType:  dataType,
			FieldType: fieldStruct.Type,
		})

		if dataType == Embeddable && !visiting[fieldType] {
			visiting[fieldType] = true
			schema.parseFields(fieldType, path+".", fieldPrefix+fieldStruct.Name+".", namer, visiting)
			delete(visiting, fieldType)
		}
	}
}

func dataTypeOf(fieldType reflect.Type) DataType {
	switch fieldType {
	case timeType:
		return Time
	case durationType:
		return Int
	case bigIntType:
		return Int
	case bigFloatType:
		return Float
	}

	switch fieldType.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Uint
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.String:
		return String
	case reflect.Slice, reflect.Array, reflect.Map:
		return Collection
	case reflect.Struct:
		return Embeddable
	}
	return ""
}

// ParseTagSetting parse `jdql:"name:zip;embedded"` style tags, keys are upper cased
func ParseTagSetting(str string, sep string) map[string]string {
	settings := map[string]string{}
	if str == "" {
		return settings
	}

	for _, value := range strings.Split(str, sep) {
		if value = strings.TrimSpace(value); value == "" {
			continue
		}
		v := strings.Split(value, ":")
		k := strings.TrimSpace(strings.ToUpper(v[0]))
		if len(v) >= 2 {
			settings[k] = strings.Join(v[1:], ":")
		} else {
			settings[k] = k
		}
	}
	return settings
}

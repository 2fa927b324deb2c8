package schema

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/jinzhu/inflection"
)

// Namer namer interface
type Namer interface {
	EntityName(name string) string
	AttributeName(entity, property string) string
}

// NamingStrategy entity and attribute naming strategy
type NamingStrategy struct {
	EntityPrefix string
	// SingularEntity singularize entity names, e.g. Products to Product
	SingularEntity bool
	// SnakeCase write attribute path segments in snake case, e.g. address.zipCode to address.zip_code
	SnakeCase bool
}

// EntityName convert string to entity name
func (ns NamingStrategy) EntityName(str string) string {
	if str == "" {
		return ""
	}
	if ns.SingularEntity {
		str = inflection.Singular(str)
	}
	return ns.EntityPrefix + str
}

// AttributeName convert property path to attribute name
func (ns NamingStrategy) AttributeName(entity, property string) string {
	if !ns.SnakeCase {
		return property
	}

	segments := strings.Split(property, ".")
	for idx, segment := range segments {
		segments[idx] = toDBName(segment)
	}
	return strings.Join(segments, ".")
}

var (
	smap sync.Map
	// https://github.com/golang/lint/blob/master/lint.go#L770
	commonInitialisms         = []string{"API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SSH", "TLS", "TTL", "UID", "UI", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSRF", "XSS"}
	commonInitialismsReplacer *strings.Replacer
)

func init() {
	var commonInitialismsForReplacer []string
	for _, initialism := range commonInitialisms {
		commonInitialismsForReplacer = append(commonInitialismsForReplacer, initialism, strings.Title(strings.ToLower(initialism)))
	}
	commonInitialismsReplacer = strings.NewReplacer(commonInitialismsForReplacer...)
}

func toDBName(name string) string {
	if name == "" {
		return ""
	} else if v, ok := smap.Load(name); ok {
		return fmt.Sprint(v)
	}

	var (
		value                          = []rune(commonInitialismsReplacer.Replace(name))
		buf                            strings.Builder
		lastCase, nextCase, nextNumber bool // upper case == true
		curCase                        = unicode.IsUpper(value[0])
	)

	for i, v := range value[:len(value)-1] {
		nextCase = unicode.IsUpper(value[i+1])
		nextNumber = unicode.IsDigit(value[i+1])

		if curCase {
			if lastCase && (nextCase || nextNumber) {
				buf.WriteRune(unicode.ToLower(v))
			} else {
				if i > 0 && value[i-1] != '_' && value[i+1] != '_' {
					buf.WriteByte('_')
				}
				buf.WriteRune(unicode.ToLower(v))
			}
		} else {
			buf.WriteRune(v)
		}

		lastCase = curCase
		curCase = nextCase
	}

	last := value[len(value)-1]
	if curCase {
		if !lastCase && len(value) > 1 {
			buf.WriteByte('_')
		}
		buf.WriteRune(unicode.ToLower(last))
	} else {
		buf.WriteRune(last)
	}

	dbName := buf.String()
	smap.Store(name, dbName)
	return dbName
}

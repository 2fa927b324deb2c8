package method

// Listener receives parse events in method name order
type Listener interface {
	EnterAction(action Action)
	EnterFirst(n int)
	EnterCondition(index int, condition Condition)
	EnterOrderBy(index int, orderBy OrderBy)
	ExitMethod()
}

// BaseListener no-op listener, embed it to implement only some events
type BaseListener struct{}

func (BaseListener) EnterAction(Action) {}
func (BaseListener) EnterFirst(int) {}
func (BaseListener) EnterCondition(int, Condition) {}
func (BaseListener) EnterOrderBy(int, OrderBy) {}
func (BaseListener) ExitMethod() {}

// descriptorBuilder collects parse events into a QueryDescriptor
type descriptorBuilder struct {
	desc *QueryDescriptor
}

func (b *descriptorBuilder) EnterAction(action Action) {
	b.desc.Action = action
}

func (b *descriptorBuilder) EnterFirst(n int) {
	b.desc.First = n
}

func (b *descriptorBuilder) EnterCondition(_ int, condition Condition) {
	b.desc.Conditions = append(b.desc.Conditions, condition)
}

func (b *descriptorBuilder) EnterOrderBy(_ int, orderBy OrderBy) {
	b.desc.OrderBy = append(b.desc.OrderBy, orderBy)
}

func (b *descriptorBuilder) ExitMethod() {}

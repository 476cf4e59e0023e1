package impl

import (
	"fmt"

	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
)

// NotifyMethodName is the change-notification method a notifying setter
// calls. It must be resolvable, with a single string parameter, on the
// owning type or its base chain.
const NotifyMethodName = "OnPropertyChanged"

// notifyingProperty backs a property with a private field and emits a
// setter that compares the incoming value to the stored one under boxed
// equality: equal values are a complete no-op (no store, no notification);
// unequal values are stored and then reported through OnPropertyChanged
// with the property's name.
type notifyingProperty struct {
	field *define.GeneratedField
	owned bool
}

// NotifyingProperty returns a change-notifying property strategy that
// declares its own private backing field.
func NotifyingProperty() define.PropertyImplementation {
	return &notifyingProperty{}
}

// NotifyingPropertyBackedBy returns a change-notifying property strategy
// bound to an existing field declared by the caller.
func NotifyingPropertyBackedBy(f *define.GeneratedField) define.PropertyImplementation {
	return &notifyingProperty{field: f}
}

func (s *notifyingProperty) Declare(td *define.TypeDefinition, p *define.GeneratedProperty) error {
	if s.field != nil {
		return nil
	}
	f, err := td.AddField(backingFieldName(td, p.Name()), p.Type(), member.Private)
	if err != nil {
		return err
	}
	s.field = f
	s.owned = true
	return nil
}

func (s *notifyingProperty) ImplementGetter(_ *define.TypeDefinition, _ *define.GeneratedProperty, b *emit.Body) error {
	b.LoadField(s.field.Name()).ReturnValue()
	return b.Err()
}

func (s *notifyingProperty) ImplementSetter(td *define.TypeDefinition, p *define.GeneratedProperty, b *emit.Body) error {
	if !td.HasMethod(NotifyMethodName, []member.TypeInfo{member.String}) {
		return fmt.Errorf("no %s(string) method is resolvable on %s or its base chain", NotifyMethodName, td.Name())
	}
	unchanged := b.NewLabel()
	b.LoadField(s.field.Name()).
		LoadArg(0).
		BranchIfEqual(unchanged).
		LoadArg(0).
		StoreField(s.field.Name()).
		LoadConst(p.Name()).
		CallMethod(NotifyMethodName, 1, false).
		MarkLabel(unchanged).
		Return()
	return b.Err()
}

func (s *notifyingProperty) OnRemoving(td *define.TypeDefinition, _ *define.GeneratedProperty) {
	if s.owned && s.field != nil {
		_ = td.RemoveField(s.field)
		s.field = nil
		s.owned = false
	}
}

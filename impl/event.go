package impl

import (
	"github.com/go-openapi/inflect"

	"github.com/syssam/typeforge/define"
	"github.com/syssam/typeforge/emit"
	"github.com/syssam/typeforge/member"
)

// defaultEvent backs an event with a private handler-list field. The add
// accessor appends; the remove accessor deletes the first matching handler.
type defaultEvent struct {
	field *define.GeneratedField
}

// DefaultEvent returns the standard event strategy.
func DefaultEvent() define.EventImplementation {
	return &defaultEvent{}
}

func (s *defaultEvent) Declare(td *define.TypeDefinition, e *define.GeneratedEvent) error {
	name := backingFieldName(td, inflect.CamelizeDownFirst(e.Name())+"Handlers")
	f, err := td.AddField(name, member.Any, member.Private)
	if err != nil {
		return err
	}
	s.field = f
	e.SetHandlerField(f.Name())
	return nil
}

func (s *defaultEvent) ImplementAdd(_ *define.TypeDefinition, e *define.GeneratedEvent, b *emit.Body) error {
	b.LoadArg(0).AppendHandler(e.HandlerField()).Return()
	return b.Err()
}

func (s *defaultEvent) ImplementRemove(_ *define.TypeDefinition, e *define.GeneratedEvent, b *emit.Body) error {
	b.LoadArg(0).RemoveHandler(e.HandlerField()).Return()
	return b.Err()
}

func (s *defaultEvent) OnRemoving(td *define.TypeDefinition, _ *define.GeneratedEvent) {
	if s.field != nil {
		_ = td.RemoveField(s.field)
		s.field = nil
	}
}

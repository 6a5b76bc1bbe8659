// Package form models the trade creation form: modal visibility, field
// values and the transient success and error messages.
package form

import (
	"maps"

	"github.com/rustyeddy/tradejournal/filter"
)

// Field names.
const (
	FieldPair       = "pair"
	FieldOpenPrice  = "openPrice"
	FieldTakeProfit = "takeProfit"
	FieldStopLoss   = "stopLoss"
	FieldNotes      = "notes"
)

// Fields holds raw form input by field name.
type Fields map[string]string

func InitialFields() Fields {
	return Fields{
		FieldPair:       "",
		FieldOpenPrice:  "",
		FieldTakeProfit: "",
		FieldStopLoss:   "",
		FieldNotes:      "",
	}
}

type State struct {
	Open           bool           `json:"open"`
	Fields         Fields         `json:"fields"`
	SuccessMessage string         `json:"successMessage,omitempty"`
	ErrorMessage   string         `json:"errorMessage,omitempty"`
	Filters        filter.Options `json:"filters"`
}

func InitialState() State {
	return State{Fields: InitialFields()}
}

// Action is a state transition. The set of actions is closed.
type Action interface {
	action()
}

type (
	OpenModal  struct{}
	CloseModal struct{}
	// UpdateForm merges Patch into the current fields.
	UpdateForm        struct{ Patch Fields }
	ResetForm         struct{}
	SetSuccessMessage struct{ Text string }
	SetErrorMessage   struct{ Text string }
	ClearMessages     struct{}
	UpdateFilters     struct{ Options filter.Options }
	ClearFilters      struct{}
)

func (OpenModal) action()         {}
func (CloseModal) action()        {}
func (UpdateForm) action()        {}
func (ResetForm) action()         {}
func (SetSuccessMessage) action() {}
func (SetErrorMessage) action()   {}
func (ClearMessages) action()     {}
func (UpdateFilters) action()     {}
func (ClearFilters) action()      {}

// Reduce returns the state after applying a. s is not modified and the
// returned state never shares its Fields map or filter bounds with s. A nil
// action leaves the state unchanged.
func Reduce(s State, a Action) State {
	next := s
	next.Fields = maps.Clone(s.Fields)
	if next.Fields == nil {
		next.Fields = InitialFields()
	}
	next.Filters = s.Filters.Clone()

	switch a := a.(type) {
	case OpenModal:
		next.Open = true
	case CloseModal:
		next.Open = false
	case UpdateForm:
		maps.Copy(next.Fields, a.Patch)
	case ResetForm:
		next.Fields = InitialFields()
	case SetSuccessMessage:
		next.SuccessMessage = a.Text
		next.ErrorMessage = ""
	case SetErrorMessage:
		next.ErrorMessage = a.Text
		next.SuccessMessage = ""
	case ClearMessages:
		next.SuccessMessage = ""
		next.ErrorMessage = ""
	case UpdateFilters:
		next.Filters = a.Options.Clone()
	case ClearFilters:
		next.Filters = filter.Options{}
	}
	return next
}

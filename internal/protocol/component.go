// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the wire format spoken between the remote
// agent and the interpreter.
package protocol

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// COMPONENT TYPES
// =============================================================================

// Component type tags understood by the interpreter. Anything else is
// kept as an unknown component and rendered as a visible placeholder.
const (
	TypeText           = "Text"
	TypeImage          = "Image"
	TypeIcon           = "Icon"
	TypeRow            = "Row"
	TypeColumn         = "Column"
	TypeList           = "List"
	TypeCard           = "Card"
	TypeButton         = "Button"
	TypeTextField      = "TextField"
	TypeDivider        = "Divider"
	TypeSlider         = "Slider"
	TypeCheckBox       = "CheckBox"
	TypeMultipleChoice = "MultipleChoice"
	TypeDateTimeInput  = "DateTimeInput"
	TypeTabs           = "Tabs"
	TypeModal          = "Modal"
)

// Component is one typed node of a surface's UI graph. The
// type-specific property bag is parsed into a typed variant exactly
// once, when the message is decoded; Props is nil for unrecognized
// types and Raw keeps the original JSON for diagnostics.
type Component struct {
	ID    string
	Type  string
	Props Props
	Raw   json.RawMessage
}

// Props is the closed set of per-type property bags.
type Props interface {
	isProps()
}

// TextProps backs a Text component.
type TextProps struct {
	Text      BindableValue `json:"text"`
	UsageHint string        `json:"usageHint,omitempty"`
}

// ImageProps backs an Image component.
type ImageProps struct {
	URL       BindableValue `json:"url"`
	Fit       string        `json:"fit,omitempty"`
	UsageHint string        `json:"usageHint,omitempty"`
}

// IconProps backs an Icon component. Name arrives camelCased
// ("chevronRight") and is converted to snake_case at render time.
type IconProps struct {
	Name BindableValue `json:"name"`
}

// RowProps backs a Row component (horizontal layout).
type RowProps struct {
	Children     ChildrenRef `json:"children"`
	Distribution string      `json:"distribution,omitempty"`
	Alignment    string      `json:"alignment,omitempty"`
}

// ColumnProps backs a Column component (vertical layout).
type ColumnProps struct {
	Children     ChildrenRef `json:"children"`
	Distribution string      `json:"distribution,omitempty"`
	Alignment    string      `json:"alignment,omitempty"`
}

// ListProps backs a List component. Direction overrides the vertical
// default.
type ListProps struct {
	Children     ChildrenRef `json:"children"`
	Direction    string      `json:"direction,omitempty"`
	Distribution string      `json:"distribution,omitempty"`
	Alignment    string      `json:"alignment,omitempty"`
}

// CardProps backs a Card component wrapping a single child.
type CardProps struct {
	Child string `json:"child,omitempty"`
}

// ButtonProps backs a Button component. Action is opaque to the
// interpreter; event dispatch belongs to the host application.
type ButtonProps struct {
	Child   string          `json:"child,omitempty"`
	Primary bool            `json:"primary,omitempty"`
	Action  json.RawMessage `json:"action,omitempty"`
}

// TextFieldProps backs a TextField component.
type TextFieldProps struct {
	Label         BindableValue `json:"label"`
	Text          BindableValue `json:"text"`
	TextFieldType string        `json:"textFieldType,omitempty"`
}

// DividerProps backs a Divider component.
type DividerProps struct {
	Axis string `json:"axis,omitempty"`
}

// SliderProps backs a Slider component.
type SliderProps struct {
	Value    BindableValue `json:"value"`
	MinValue *float64      `json:"minValue,omitempty"`
	MaxValue *float64      `json:"maxValue,omitempty"`
}

// CheckBoxProps backs a CheckBox component.
type CheckBoxProps struct {
	Label BindableValue `json:"label"`
	Value BindableValue `json:"value"`
}

// MultipleChoiceProps backs a MultipleChoice component. Options is
// expected to resolve to an array of {label, value} objects;
// Selections resolves to the currently selected value(s).
type MultipleChoiceProps struct {
	Label                BindableValue `json:"label"`
	Options              BindableValue `json:"options"`
	Selections           BindableValue `json:"selections"`
	MaxAllowedSelections int           `json:"maxAllowedSelections,omitempty"`
}

// DateTimeInputProps backs a DateTimeInput component.
type DateTimeInputProps struct {
	Value      BindableValue `json:"value"`
	EnableDate *bool         `json:"enableDate,omitempty"`
	EnableTime *bool         `json:"enableTime,omitempty"`
}

// TabItem is one tab of a Tabs component.
type TabItem struct {
	Title BindableValue `json:"title"`
	Child string        `json:"child"`
}

// TabsProps backs a Tabs component.
type TabsProps struct {
	TabItems []TabItem `json:"tabItems"`
}

// ModalProps backs a Modal component: an entry point child plus the
// content shown when the modal is open.
type ModalProps struct {
	EntryPoint string `json:"entryPoint,omitempty"`
	Content    string `json:"content,omitempty"`
}

func (TextProps) isProps()           {}
func (ImageProps) isProps()          {}
func (IconProps) isProps()           {}
func (RowProps) isProps()            {}
func (ColumnProps) isProps()         {}
func (ListProps) isProps()           {}
func (CardProps) isProps()           {}
func (ButtonProps) isProps()         {}
func (TextFieldProps) isProps()      {}
func (DividerProps) isProps()        {}
func (SliderProps) isProps()         {}
func (CheckBoxProps) isProps()       {}
func (MultipleChoiceProps) isProps() {}
func (DateTimeInputProps) isProps()  {}
func (TabsProps) isProps()           {}
func (ModalProps) isProps()          {}

// =============================================================================
// COMPONENT DECODING
// =============================================================================

// componentEnvelope pulls the id/type discriminator before the bag is
// parsed into its typed variant.
type componentEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// UnmarshalJSON decodes a component record, dispatching the property
// bag on the "type" field. Unknown types decode without error; their
// Props stays nil and Raw keeps the payload.
func (c *Component) UnmarshalJSON(data []byte) error {
	var env componentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("component envelope: %w", err)
	}
	c.ID = env.ID
	c.Type = env.Type
	c.Raw = append(c.Raw[:0], data...)

	decode := func(v Props) error {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%s %q: %w", env.Type, env.ID, err)
		}
		return nil
	}

	switch env.Type {
	case TypeText:
		p := &TextProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeImage:
		p := &ImageProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeIcon:
		p := &IconProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeRow:
		p := &RowProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeColumn:
		p := &ColumnProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeList:
		p := &ListProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeCard:
		p := &CardProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeButton:
		p := &ButtonProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeTextField:
		p := &TextFieldProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeDivider:
		p := &DividerProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeSlider:
		p := &SliderProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeCheckBox:
		p := &CheckBoxProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeMultipleChoice:
		p := &MultipleChoiceProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeDateTimeInput:
		p := &DateTimeInputProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeTabs:
		p := &TabsProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	case TypeModal:
		p := &ModalProps{}
		if err := decode(p); err != nil {
			return err
		}
		c.Props = *p
	default:
		// Unknown type: tolerated here, surfaced by the renderer.
	}
	return nil
}

// MarshalJSON writes the component back out in its wire shape.
func (c Component) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	obj := map[string]any{"id": c.ID, "type": c.Type}
	if c.Props != nil {
		props, err := json.Marshal(c.Props)
		if err != nil {
			return nil, err
		}
		var fields map[string]any
		if err := json.Unmarshal(props, &fields); err != nil {
			return nil, err
		}
		for k, v := range fields {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

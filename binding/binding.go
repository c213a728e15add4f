package binding

import (
	"errors"
	"fmt"

	fv "github.com/Gobd/formvalidation"
)

// ErrNotValidatable is returned for holders without validation rules.
var ErrNotValidatable = errors.New("holder has no validation rules")

// ClassToggler adds and removes classes.
type ClassToggler interface {
	ToggleClass(class string, on bool)
}

// TextSetter replaces the text content.
type TextSetter interface {
	SetText(text string)
}

// AttributeSource exposes markup attributes.
type AttributeSource interface {
	Attributes() map[string]string
}

// ValidatableElement declares rules through its attributes.
type ValidatableElement interface {
	ClassToggler
	AttributeSource
}

// MessageElement renders a validation message.
type MessageElement interface {
	ClassToggler
	TextSetter
}

// Validate toggles opts.ValidClass and opts.ErrorClass on el to reflect the
// validity of h, now and on every change, until cancel is called.
func Validate(el ClassToggler, h fv.Holder, opts fv.Options) (cancel func(), err error) {
	st, ok := fv.StateOf(h)
	if !ok {
		return nil, ErrNotValidatable
	}
	opts = opts.WithDefaults()

	valid := st.ValidObservable()
	update := func() {
		v := valid.Get()
		el.ToggleClass(opts.ValidClass, v)
		el.ToggleClass(opts.ErrorClass, !v)
	}
	update()
	return valid.Subscribe(update), nil
}

// Validatable attaches the rules declared by the attributes of el to h and
// then binds el like Validate.
func Validatable(el ValidatableElement, h fv.Holder, opts fv.Options, attach ...fv.AttachOption) (cancel func(), err error) {
	if _, err := fv.Attach(h, FromAttributes(el.Attributes()), attach...); err != nil {
		return nil, fmt.Errorf("attach attribute rules: %w", err)
	}
	return Validate(el, h, opts)
}

// ValidationMessage adds opts.ErrorClass to el and renders the first error
// message of h into it, clearing the text while h is valid.
func ValidationMessage(el MessageElement, h fv.Holder, opts fv.Options) (cancel func(), err error) {
	st, ok := fv.StateOf(h)
	if !ok {
		return nil, ErrNotValidatable
	}
	opts = opts.WithDefaults()
	el.ToggleClass(opts.ErrorClass, true)

	message := st.MessageObservable()
	update := func() {
		el.SetText(message.Get())
	}
	update()
	return message.Subscribe(update), nil
}

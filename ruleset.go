package formvalidation

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

const messagesKey = "messages"

// RuleSet is an ordered set of rule names and their parameters, plus message
// overrides. A parameter is a literal, false to disable the rule, a function
// without arguments, or a Reactive value. Rules run in the order they were
// first added.
//
// A RuleSet decodes from a YAML mapping; the reserved key "messages" holds
// the overrides:
//
//	required: true
//	range: {min: 1, max: 10}
//	messages:
//	  required: Tell us your age
type RuleSet struct {
	names    []string
	params   map[string]any
	messages map[string]Message
}

// NewRuleSet returns an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		params:   map[string]any{},
		messages: map[string]Message{},
	}
}

// Add sets the parameter of the named rule. Setting an existing rule keeps
// its position. The name "messages" adds overrides instead; param must then
// be a map of rule names to strings or Message values.
func (rs *RuleSet) Add(name string, param any) *RuleSet {
	if name == messagesKey {
		rs.addMessages(param)
		return rs
	}
	if _, ok := rs.params[name]; !ok {
		rs.names = append(rs.names, name)
	}
	rs.params[name] = param
	return rs
}

// Message overrides the message of the named rule with text, which may use
// {n} placeholders. An empty text removes the override.
func (rs *RuleSet) Message(name, text string) *RuleSet {
	if text == "" {
		delete(rs.messages, name)
		return rs
	}
	rs.messages[name] = Text(text)
	return rs
}

// MessageFunc overrides the message of the named rule with fn. A nil fn
// removes the override.
func (rs *RuleSet) MessageFunc(name string, fn Message) *RuleSet {
	if fn == nil {
		delete(rs.messages, name)
		return rs
	}
	rs.messages[name] = fn
	return rs
}

func (rs *RuleSet) addMessages(param any) {
	switch m := param.(type) {
	case map[string]string:
		for name, text := range m {
			rs.Message(name, text)
		}
	case map[string]Message:
		for name, fn := range m {
			rs.MessageFunc(name, fn)
		}
	case map[string]any:
		for name, v := range m {
			switch v := v.(type) {
			case string:
				rs.Message(name, v)
			case Message:
				rs.MessageFunc(name, v)
			case func(any) string:
				rs.MessageFunc(name, v)
			}
		}
	}
}

// Names returns the rule names in evaluation order.
func (rs *RuleSet) Names() []string {
	return slices.Clone(rs.names)
}

// Param returns the parameter of the named rule as it was added.
func (rs *RuleSet) Param(name string) (any, bool) {
	p, ok := rs.params[name]
	return p, ok
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.names)
}

func (rs *RuleSet) override(name string) Message {
	return rs.messages[name]
}

// merge copies other into rs, last write wins per rule name and per message.
func (rs *RuleSet) merge(other *RuleSet) {
	for _, name := range other.names {
		rs.Add(name, other.params[name])
	}
	for name, fn := range other.messages {
		rs.messages[name] = fn
	}
}

func (rs *RuleSet) clone() *RuleSet {
	c := NewRuleSet()
	c.merge(rs)
	return c
}

// UnmarshalYAML decodes a mapping of rule names to parameters, keeping the
// document order.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("rule set must be a mapping, got %s", kindName(node.Kind))
	}
	if rs.params == nil {
		*rs = *NewRuleSet()
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == messagesKey {
			var msgs map[string]string
			if err := value.Decode(&msgs); err != nil {
				return fmt.Errorf("messages: %w", err)
			}
			rs.addMessages(msgs)
			continue
		}

		var param any
		if err := value.Decode(&param); err != nil {
			return fmt.Errorf("rule %s: %w", key.Value, err)
		}
		rs.Add(key.Value, param)
	}
	return nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "mapping"
}

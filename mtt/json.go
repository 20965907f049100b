package mtt

// ToJSON renders an OutputTerm as a generic, type-tagged map — the nested
// shape a response encoder serializes the compiled MTT's rule bodies with
// (spec §6's `mtt.rules[].rhs`).
func ToJSON(t OutputTerm) map[string]interface{} {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case *Text:
		return map[string]interface{}{"type": "text", "value": v.Value}
	case *ValueOf:
		return map[string]interface{}{"type": "value-of", "select": v.Select}
	case *Element:
		children := make([]map[string]interface{}, 0, len(v.Children))
		for _, c := range v.Children {
			children = append(children, ToJSON(c))
		}
		attrs := make([]map[string]interface{}, 0, len(v.Attributes))
		for _, a := range v.Attributes {
			if a.IsExpr {
				attrs = append(attrs, map[string]interface{}{"name": a.Name, "value_expr": a.ValueExpr})
			} else {
				attrs = append(attrs, map[string]interface{}{"name": a.Name, "value": a.Value})
			}
		}
		return map[string]interface{}{
			"type": "element", "name": v.Name, "attributes": attrs, "children": children,
		}
	case *Attribute:
		return map[string]interface{}{"type": "attribute", "name": v.Name, "value": v.Value}
	case *ApplyTemplates:
		return map[string]interface{}{"type": "apply-templates", "select": v.Select, "call": v.Call}
	case *ForEach:
		return map[string]interface{}{
			"type": "for-each", "select": v.Select, "body": ToJSON(v.Body), "list_state": v.ListState,
		}
	case *If:
		return map[string]interface{}{"type": "if", "test": v.Test, "then": ToJSON(v.Then)}
	case *When:
		return map[string]interface{}{"type": "when", "test": v.Test, "body": ToJSON(v.Body)}
	case *Otherwise:
		return map[string]interface{}{"type": "otherwise", "body": ToJSON(v.Body)}
	case *Choose:
		branches := make([]map[string]interface{}, 0, len(v.Branches))
		for _, b := range v.Branches {
			branches = append(branches, ToJSON(b))
		}
		return map[string]interface{}{"type": "choose", "branches": branches}
	case *Sequence:
		children := make([]map[string]interface{}, 0, len(v.Children))
		for _, c := range v.Children {
			children = append(children, ToJSON(c))
		}
		return map[string]interface{}{"type": "sequence", "children": children}
	}
	return nil
}

// RuleJSON is the wire shape of a single MTT rule (spec §6).
type RuleJSON struct {
	State  string                 `json:"state"`
	LHS    string                 `json:"lhs"`
	RHS    map[string]interface{} `json:"rhs"`
	Guard  string                 `json:"guard"`
	Params []string               `json:"params"`
}

// MTTJSON is the wire shape of a whole MTT (spec §6).
type MTTJSON struct {
	States         []string   `json:"states"`
	InitialState   string     `json:"initial_state"`
	InputAlphabet  []string   `json:"input_alphabet"`
	OutputAlphabet []string   `json:"output_alphabet"`
	Rules          []RuleJSON `json:"rules"`
}

// ToWire converts an MTT to its serializable form.
func (m *MTT) ToWire() MTTJSON {
	rules := make([]RuleJSON, 0, len(m.Rules))
	for _, r := range m.Rules {
		params := r.Params
		if params == nil {
			params = []string{}
		}
		rules = append(rules, RuleJSON{
			State: r.State, LHS: r.LHSPattern, RHS: ToJSON(r.RHSTerm), Guard: r.Guard, Params: params,
		})
	}
	return MTTJSON{
		States:         m.States,
		InitialState:   m.InitialState,
		InputAlphabet:  m.InputAlphabet,
		OutputAlphabet: m.OutputAlphabet,
		Rules:          rules,
	}
}

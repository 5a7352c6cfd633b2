package davclient

import (
	"maps"
	"net/http"
)

// StatusRule is one row of a status table.
type StatusRule struct {
	Kind   OutcomeKind
	Reason string
}

// StatusPolicy maps status codes of one operation to outcomes. Codes
// without a row get Fallback.
type StatusPolicy struct {
	Rules    map[int]StatusRule
	Fallback StatusRule
}

// StatusInterpreter turns status codes into outcomes. It is immutable;
// With returns a modified copy.
type StatusInterpreter struct {
	policies map[Operation]StatusPolicy
}

// defaultPolicies accept any reply to DELETE and MKCALENDAR: only transport
// errors fail those two.
var defaultPolicies = map[Operation]StatusPolicy{
	OpPut: {
		Rules: map[int]StatusRule{
			http.StatusCreated:            {Kind: Success},
			http.StatusNoContent:          {Kind: Success},
			http.StatusPreconditionFailed: {Kind: BenignConflict, Reason: "item exists?"},
			http.StatusConflict:           {Kind: HardFailure, Reason: "conflict: item still on server"},
		},
		Fallback: StatusRule{Kind: HardFailure, Reason: "unexpected status"},
	},
	OpDelete: {
		Fallback: StatusRule{Kind: Success},
	},
	OpMkCalendar: {
		Fallback: StatusRule{Kind: Success},
	},
}

// NewStatusInterpreter returns the interpreter with the default table.
func NewStatusInterpreter() *StatusInterpreter {
	return &StatusInterpreter{policies: maps.Clone(defaultPolicies)}
}

// With returns a copy of s where op is governed by p.
func (s *StatusInterpreter) With(op Operation, p StatusPolicy) *StatusInterpreter {
	policies := maps.Clone(s.policies)
	p.Rules = maps.Clone(p.Rules)
	policies[op] = p
	return &StatusInterpreter{policies: policies}
}

// Classify returns the outcome of op answered with statusCode. Operations
// without a policy always fail.
func (s *StatusInterpreter) Classify(op Operation, statusCode int, body string) Outcome {
	rule := StatusRule{Kind: HardFailure, Reason: "no status policy for " + op.String()}
	if policy, ok := s.policies[op]; ok {
		rule = policy.Fallback
		if r, ok := policy.Rules[statusCode]; ok {
			rule = r
		}
	}

	out := Outcome{
		Operation:  op,
		Kind:       rule.Kind,
		StatusCode: statusCode,
		Reason:     rule.Reason,
	}
	if rule.Kind == HardFailure {
		out.Body = body
	}
	return out
}

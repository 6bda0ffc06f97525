package filter

import (
	"github.com/google/cel-go/cel"

	"github.com/apiforge/modelkit/field"
	"github.com/apiforge/modelkit/model"
	"github.com/apiforge/modelkit/modelerr"
)

// Expr compiles a CEL expression into a criterion over the given field map.
// Every field name becomes a CEL variable holding the model's current value
// for that field, and "id" holds the identifier's string form:
//
//	c, err := filter.Expr(fields, `age >= 18 && name.startsWith("B")`)
//
// Field names must be valid CEL identifiers to be referenced; compilation
// fails otherwise. The expression must evaluate to a boolean.
func Expr(fields field.Fields, expression string) (Criterion, error) {
	opts := make([]cel.EnvOption, 0, fields.Len()+1)
	for _, d := range fields.All() {
		opts = append(opts, cel.Variable(d.Name(), cel.DynType))
	}
	opts = append(opts, cel.Variable("id", cel.StringType))

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, modelerr.E("filter.Expr", modelerr.KindInternal, err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, modelerr.E("filter.Expr", modelerr.KindDeclaration, issues.Err()).
			WithContext(map[string]any{"expression": expression})
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, modelerr.Errorf("filter.Expr", modelerr.KindDeclaration,
			"expression %q must evaluate to bool, got %s", expression, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, modelerr.E("filter.Expr", modelerr.KindInternal, err)
	}

	return exprCriterion{fields: fields, program: prg, expression: expression}, nil
}

type exprCriterion struct {
	fields     field.Fields
	program    cel.Program
	expression string
}

func (c exprCriterion) Matches(m model.Model) (bool, error) {
	activation := make(map[string]any, c.fields.Len()+1)
	for _, d := range c.fields.All() {
		v, err := d.Get(m)
		if err != nil {
			return false, err
		}
		activation[d.Name()] = v
	}
	activation["id"] = m.ID().String()

	out, _, err := c.program.Eval(activation)
	if err != nil {
		return false, modelerr.E("Criterion.Matches", modelerr.KindIncomparable, err).
			WithContext(map[string]any{"expression": c.expression})
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, modelerr.Errorf("Criterion.Matches", modelerr.KindIncomparable,
			"expression %q produced %T, want bool", c.expression, out.Value())
	}
	return result, nil
}

func (c exprCriterion) String() string {
	return c.expression
}

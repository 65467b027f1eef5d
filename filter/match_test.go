package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pagerous/scimpler-sub000/datatype"
	"github.com/Pagerous/scimpler-sub000/schema"
)

const (
	coreURN       = "urn:ietf:params:scim:schemas:core:2.0:User"
	enterpriseURN = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
)

func testSchema() *schema.Schema {
	return schema.New(coreURN,
		&schema.Attribute{
			Name:      schema.AttrName("id"),
			Type:      datatype.String,
			CaseExact: true,
		},
		schema.Simple("userName", datatype.String),
		schema.Simple("title", datatype.String),
		schema.Simple("active", datatype.Boolean),
		schema.Simple("age", datatype.Integer),
		schema.Simple("weight", datatype.Decimal),
		schema.Simple("created", datatype.DateTime),
		&schema.Attribute{
			Name:        schema.AttrName("tags"),
			Type:        datatype.String,
			MultiValued: true,
		},
		schema.Complex("name", false,
			schema.Simple("givenName", datatype.String),
			schema.Simple("familyName", datatype.String),
		),
		schema.Complex("emails", true,
			schema.Simple("type", datatype.String),
			schema.Simple("value", datatype.String),
			schema.Simple("primary", datatype.Boolean),
		),
	).WithExtension(enterpriseURN,
		schema.Simple("department", datatype.String),
	)
}

func mustParse(t *testing.T, expression string) Operator {
	t.Helper()
	op, errs := Parse(expression)
	require.Empty(t, errs)
	require.NotNil(t, op)
	return op
}

func TestMatch_Comparisons(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name       string
		expression string
		data       map[string]any
		strict     bool
		want       MatchResult
	}{
		{
			"string equality folds case",
			`userName eq "JOHN"`,
			map[string]any{"userName": "john"},
			true, ResultMatch,
		},
		{
			"case exact attribute",
			`id eq "ABC"`,
			map[string]any{"id": "abc"},
			true, ResultNoMatch,
		},
		{
			"contains",
			`userName co "oh"`,
			map[string]any{"userName": "John"},
			true, ResultMatch,
		},
		{
			"starts with",
			`userName sw "jo"`,
			map[string]any{"userName": "John"},
			true, ResultMatch,
		},
		{
			"ends with no match",
			`userName ew "x"`,
			map[string]any{"userName": "John"},
			true, ResultNoMatch,
		},
		{
			"integer greater than",
			`age gt 18`,
			map[string]any{"age": 21},
			true, ResultMatch,
		},
		{
			"integer boundary",
			`age gt 18`,
			map[string]any{"age": 18},
			true, ResultNoMatch,
		},
		{
			"integer equals decimal literal",
			`age eq 21.0`,
			map[string]any{"age": 21},
			true, ResultMatch,
		},
		{
			"decimal ordering",
			`weight lt 72.5`,
			map[string]any{"weight": 70.2},
			true, ResultMatch,
		},
		{
			"datetime ordering",
			`created gt "2024-01-01T00:00:00Z"`,
			map[string]any{"created": "2024-06-01T12:00:00Z"},
			true, ResultMatch,
		},
		{
			"datetime equality across offsets",
			`created eq "2024-01-01T00:00:00Z"`,
			map[string]any{"created": "2024-01-01T01:00:00+01:00"},
			true, ResultMatch,
		},
		{
			"boolean equality",
			`active eq true`,
			map[string]any{"active": true},
			true, ResultMatch,
		},
		{
			"boolean against string literal",
			`active eq "true"`,
			map[string]any{"active": true},
			true, ResultNoMatch,
		},
		{
			"contains unsupported on integers",
			`age co 2`,
			map[string]any{"age": 21},
			true, ResultNoMatch,
		},
		{
			"null literal never matches",
			`userName eq null`,
			map[string]any{},
			true, ResultNoMatch,
		},
		{
			"unknown attribute",
			`nickName eq "x"`,
			map[string]any{"nickName": "x"},
			true, ResultNoMatch,
		},
		{
			"missing data strict",
			`age gt 18`,
			map[string]any{},
			true, ResultMissingData,
		},
		{
			"missing data non-strict",
			`age gt 18`,
			map[string]any{},
			false, ResultMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustParse(t, tt.expression)
			assert.Equal(t, tt.want, op.Match(tt.data, s, tt.strict))
		})
	}
}

func TestMatch_Present(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name       string
		expression string
		data       map[string]any
		want       MatchResult
	}{
		{"non-empty string", `title pr`, map[string]any{"title": "boss"}, ResultMatch},
		{"empty string", `title pr`, map[string]any{"title": ""}, ResultNoMatch},
		{"absent attribute", `title pr`, map[string]any{}, ResultNoMatch},
		{
			"complex list with values",
			`emails pr`,
			map[string]any{"emails": []any{map[string]any{"value": "a@x.com"}}},
			ResultMatch,
		},
		{
			"complex list without values",
			`emails pr`,
			map[string]any{"emails": []any{map[string]any{"type": "work"}}},
			ResultNoMatch,
		},
		{
			"empty complex list",
			`emails pr`,
			map[string]any{"emails": []any{}},
			ResultNoMatch,
		},
		{"non-empty scalar list", `tags pr`, map[string]any{"tags": []any{"vip"}}, ResultMatch},
		{"empty scalar list", `tags pr`, map[string]any{"tags": []any{}}, ResultNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustParse(t, tt.expression)
			// Presence of an absent attribute is a definite no-match in
			// both modes.
			assert.Equal(t, tt.want, op.Match(tt.data, s, true))
			assert.Equal(t, tt.want, op.Match(tt.data, s, false))
		})
	}
}

func TestMatch_Logical(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name       string
		expression string
		data       map[string]any
		strict     bool
		want       MatchResult
	}{
		{
			"and both match",
			`active eq true and userName eq "john"`,
			map[string]any{"active": true, "userName": "john"},
			true, ResultMatch,
		},
		{
			"and short-circuits on no-match",
			`active eq true and age gt 18`,
			map[string]any{"active": false},
			true, ResultNoMatch,
		},
		{
			"and with missing operand strict",
			`active eq true and age gt 18`,
			map[string]any{"active": true},
			true, ResultMissingData,
		},
		{
			"and with missing operand non-strict",
			`active eq true and age gt 18`,
			map[string]any{"active": true},
			false, ResultMatch,
		},
		{
			"or short-circuits on match",
			`active eq true or age gt 18`,
			map[string]any{"active": true},
			true, ResultMatch,
		},
		{
			"or with missing operand strict",
			`active eq true or age gt 18`,
			map[string]any{"active": false},
			true, ResultMissingData,
		},
		{
			"or with missing operand non-strict",
			`active eq true or age gt 18`,
			map[string]any{"active": false},
			false, ResultMatch,
		},
		{
			"not inverts match",
			`not age gt 18`,
			map[string]any{"age": 21},
			true, ResultNoMatch,
		},
		{
			"not inverts no-match",
			`not age gt 18`,
			map[string]any{"age": 10},
			true, ResultMatch,
		},
		{
			"not propagates missing data strict",
			`not age gt 18`,
			map[string]any{},
			true, ResultMissingData,
		},
		{
			"not of a non-strict missing leaf",
			`not age gt 18`,
			map[string]any{},
			false, ResultNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustParse(t, tt.expression)
			assert.Equal(t, tt.want, op.Match(tt.data, s, tt.strict))
		})
	}
}

func TestMatch_MultiValued(t *testing.T) {
	s := testSchema()
	data := map[string]any{
		"emails": []any{
			map[string]any{"type": "work", "value": "john@corp.com"},
			map[string]any{"type": "home", "value": "john@example.com"},
		},
	}

	tests := []struct {
		name       string
		expression string
		want       MatchResult
	}{
		{"sub-attribute over any element", `emails.value co "@example.com"`, ResultMatch},
		{"sub-attribute no element matches", `emails.value ew "@nowhere.org"`, ResultNoMatch},
		{"ne matches when any element differs", `emails.type ne "work"`, ResultMatch},
		{"comparison against value sub-attribute", `emails eq "john@corp.com"`, ResultMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustParse(t, tt.expression)
			assert.Equal(t, tt.want, op.Match(data, s, true))
		})
	}

	t.Run("scalar list matches on any element", func(t *testing.T) {
		op := mustParse(t, `tags eq "abc"`)
		assert.Equal(t, ResultMatch,
			op.Match(map[string]any{"tags": []any{"x", "abc", "y"}}, s, true))
		assert.Equal(t, ResultNoMatch,
			op.Match(map[string]any{"tags": []any{"x", "y"}}, s, true))
	})
}

func TestMatch_ComplexFilter(t *testing.T) {
	s := testSchema()
	data := map[string]any{
		"name": map[string]any{"givenName": "John", "familyName": "Smith"},
		"emails": []any{
			map[string]any{"type": "work", "value": "john@corp.com"},
			map[string]any{"type": "home", "value": "john@example.com"},
		},
	}

	t.Run("conditions hold within one element", func(t *testing.T) {
		op := mustParse(t, `emails[type eq "work" and value co "@corp.com"]`)
		assert.Equal(t, ResultMatch, op.Match(data, s, true))
	})

	t.Run("conditions split across elements", func(t *testing.T) {
		op := mustParse(t, `emails[type eq "work" and value co "@example.com"]`)
		assert.Equal(t, ResultNoMatch, op.Match(data, s, true))
	})

	t.Run("single-valued complex attribute", func(t *testing.T) {
		op := mustParse(t, `name[givenName eq "john"]`)
		assert.Equal(t, ResultMatch, op.Match(data, s, true))
	})

	t.Run("sub-attribute missing in every element", func(t *testing.T) {
		op := mustParse(t, `emails[primary eq true]`)
		assert.Equal(t, ResultMissingData, op.Match(data, s, true))
		assert.Equal(t, ResultMatch, op.Match(data, s, false))
	})

	t.Run("filter on a non-complex attribute", func(t *testing.T) {
		op := mustParse(t, `userName[value eq "x"]`)
		assert.Equal(t, ResultNoMatch, op.Match(map[string]any{"userName": "x"}, s, true))
	})

	t.Run("absent complex attribute", func(t *testing.T) {
		op := mustParse(t, `emails[type eq "work"]`)
		assert.Equal(t, ResultMissingData, op.Match(map[string]any{}, s, true))
		assert.Equal(t, ResultMatch, op.Match(map[string]any{}, s, false))
	})
}

func TestMatch_Extension(t *testing.T) {
	s := testSchema()
	data := map[string]any{
		"userName":    "john",
		enterpriseURN: map[string]any{"department": "Engineering"},
	}

	t.Run("unqualified name", func(t *testing.T) {
		op := mustParse(t, `department eq "engineering"`)
		assert.Equal(t, ResultMatch, op.Match(data, s, true))
	})

	t.Run("urn qualified name", func(t *testing.T) {
		op := mustParse(t, enterpriseURN+`:department sw "eng"`)
		assert.Equal(t, ResultMatch, op.Match(data, s, true))
	})
}

func TestMatch_NilSchema(t *testing.T) {
	op := mustParse(t, `userName eq "john"`)
	assert.Equal(t, ResultNoMatch, op.Match(map[string]any{"userName": "john"}, nil, true))
}

func TestMatchResult(t *testing.T) {
	assert.True(t, ResultMatch.Matched())
	assert.False(t, ResultNoMatch.Matched())
	assert.False(t, ResultMissingData.Matched())

	assert.Equal(t, "match", ResultMatch.String())
	assert.Equal(t, "noMatch", ResultNoMatch.String())
	assert.Equal(t, "missingData", ResultMissingData.String())
}

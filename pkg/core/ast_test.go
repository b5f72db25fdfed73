package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

func col(name string) *core.ColumnRef {
	return &core.ColumnRef{Name: core.Ident{Name: name}}
}

func TestWithChildren_RoundTrip(t *testing.T) {
	nodes := []core.Node{
		&core.SelectStmt{
			Body: &core.SelectCore{
				Columns: []*core.SelectItem{{Expr: col("a")}, {Expr: col("b")}},
				From:    []core.TableRef{&core.TableName{Name: core.Ident{Name: "t"}}},
				Where:   &core.BinaryExpr{Left: col("a"), Op: token.EQ, Right: col("b")},
				GroupBy: []core.Expr{col("a")},
			},
			OrderBy: []*core.OrderItem{{Expr: col("a"), Desc: true}},
		},
		&core.FuncCall{Name: "NVL", Args: []core.Expr{col("a"), col("b")}},
		&core.CaseExpr{Whens: []*core.WhenClause{{Condition: col("a"), Result: col("b")}}},
		&core.InExpr{Expr: col("a"), Values: []core.Expr{col("b"), col("c")}},
		&core.JoinExpr{
			Type:  core.JoinLeft,
			Left:  &core.TableName{Name: core.Ident{Name: "a"}},
			Right: &core.TableName{Name: core.Ident{Name: "b"}},
		},
		&core.CreateStmt{
			Object:  core.ObjectTable,
			Name:    &core.TableName{Name: core.Ident{Name: "t"}},
			Columns: []*core.ColumnDef{{Name: core.Ident{Name: "id"}, Type: core.DataType{Name: "INT"}}},
		},
	}

	for _, n := range nodes {
		t.Run(n.Kind().String(), func(t *testing.T) {
			children := n.Children()
			cp := n.WithChildren(children)
			require.Equal(t, n.Kind(), cp.Kind())
			assert.Equal(t, n, cp)
			assert.NotSame(t, n, cp)
		})
	}
}

func TestChildren_AbsentSlotsAreNil(t *testing.T) {
	sel := &core.SelectStmt{Body: &core.SelectCore{}}
	children := sel.Children()
	require.Len(t, children, 4)
	assert.Nil(t, children[0], "With")
	assert.NotNil(t, children[1], "Body")
	assert.Nil(t, children[2], "Limit")
	assert.Nil(t, children[3], "Offset")

	j := &core.JoinExpr{Left: &core.TableName{}, Right: &core.TableName{}}
	assert.Nil(t, j.Children()[2])
}

func TestWithChildren_ReplacesSlot(t *testing.T) {
	cast := &core.CastExpr{Expr: col("a"), Type: core.DataType{Name: "DATE"}}
	out := cast.WithChildren([]core.Node{col("b")}).(*core.CastExpr)

	assert.Equal(t, "b", out.Expr.(*core.ColumnRef).Name.Name)
	assert.Equal(t, "a", cast.Expr.(*core.ColumnRef).Name.Name, "original is untouched")
	assert.Equal(t, "DATE", out.Type.Name)
}

func TestWithChildren_WrongArityPanics(t *testing.T) {
	assert.Panics(t, func() {
		(&core.BinaryExpr{}).WithChildren([]core.Node{col("a")})
	})
}

func TestNodeInfo_Comments(t *testing.T) {
	item := &core.SelectItem{Expr: col("a")}
	assert.False(t, item.Info().HasComments())

	item.Info().AddLeadingComment(&token.Comment{Kind: token.LineComment, Text: "-- x"})
	item.Info().AddTrailingComment(&token.Comment{Kind: token.BlockComment, Text: "/* y */"})
	assert.True(t, item.Info().HasComments())

	item.Info().ClearComments()
	assert.False(t, item.Info().HasComments())
}

func TestDataType_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b core.DataType
		want bool
	}{
		{"same", core.DataType{Name: "DATE"}, core.DataType{Name: "DATE"}, true},
		{"params", core.DataType{Name: "DECIMAL", Params: []string{"10", "2"}}, core.DataType{Name: "DECIMAL", Params: []string{"10", "2"}}, true},
		{"different params", core.DataType{Name: "DECIMAL", Params: []string{"10"}}, core.DataType{Name: "DECIMAL", Params: []string{"10", "2"}}, false},
		{"different name", core.DataType{Name: "DATE"}, core.DataType{Name: "TIMESTAMP"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "SelectStmt", core.KindSelectStmt.String())
	assert.Equal(t, "OuterJoinMarker", core.KindOuterJoinMarker.String())
	assert.Equal(t, "Kind(200)", core.Kind(200).String())
}

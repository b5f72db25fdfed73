package parser_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/trino"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, sql string, d *dialect.Dialect) core.Stmt {
	t.Helper()
	stmts, err := parser.Parse(sql, d)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func selectCore(t *testing.T, stmt core.Stmt) *core.SelectCore {
	t.Helper()
	sel, ok := stmt.(*core.SelectStmt)
	require.True(t, ok, "expected SelectStmt, got %T", stmt)
	sc, ok := sel.Body.(*core.SelectCore)
	require.True(t, ok, "expected SelectCore body, got %T", sel.Body)
	return sc
}

// ---------- Scripts ----------

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		d       *dialect.Dialect
		wantLen int
	}{
		{"single", "SELECT 1 FROM dual", oracle.Oracle, 1},
		{"semicolons", "SELECT 1 FROM dual; SELECT 2 FROM dual;", oracle.Oracle, 2},
		{"empty statements", ";; SELECT 1 FROM dual ;;", oracle.Oracle, 1},
		{"slash terminator", "SELECT 1 FROM dual\n/\nSELECT 2 FROM dual\n/", oracle.Oracle, 2},
		{"empty input", "  -- nothing here\n", trino.Trino, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := parser.Parse(tt.sql, tt.d)
			require.NoError(t, err)
			assert.Len(t, stmts, tt.wantLen)
		})
	}
}

func TestParseSlashIsDivisionAfterExpression(t *testing.T) {
	sc := selectCore(t, parseOne(t, "SELECT a / 2 FROM t", oracle.Oracle))
	bin, ok := sc.Columns[0].Expr.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.SLASH, bin.Op)
}

func TestParseRequiresDialect(t *testing.T) {
	_, err := parser.Parse("SELECT 1", nil)
	assert.ErrorIs(t, err, dialect.ErrDialectRequired)
}

// ---------- Queries ----------

func TestParseSelectClauses(t *testing.T) {
	sql := `SELECT DISTINCT d.name AS dept, COUNT(*) cnt
		FROM emp e JOIN dept d ON e.dept_id = d.id
		WHERE e.salary > 1000
		GROUP BY d.name
		HAVING COUNT(*) > 2
		ORDER BY cnt DESC NULLS LAST`

	stmt := parseOne(t, sql, trino.Trino)
	sel := stmt.(*core.SelectStmt)
	sc := selectCore(t, stmt)

	assert.True(t, sc.Distinct)
	require.Len(t, sc.Columns, 2)
	assert.Equal(t, "dept", sc.Columns[0].Alias.Name)
	assert.Equal(t, "cnt", sc.Columns[1].Alias.Name)

	fn, ok := sc.Columns[1].Expr.(*core.FuncCall)
	require.True(t, ok)
	assert.Equal(t, "COUNT", fn.Name)
	assert.True(t, fn.Star)

	require.Len(t, sc.From, 1)
	join, ok := sc.From[0].(*core.JoinExpr)
	require.True(t, ok)
	assert.Equal(t, core.JoinInner, join.Type)
	assert.NotNil(t, join.On)

	assert.NotNil(t, sc.Where)
	assert.Len(t, sc.GroupBy, 1)
	assert.NotNil(t, sc.Having)

	require.Len(t, sel.OrderBy, 1)
	assert.True(t, sel.OrderBy[0].Desc)
	assert.Equal(t, core.NullsLast, sel.OrderBy[0].Nulls)
}

func TestParseSetOperations(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantOp  core.SetOpType
		wantAll bool
	}{
		{"union all", "SELECT a FROM t UNION ALL SELECT a FROM u", core.SetUnion, true},
		{"oracle minus", "SELECT a FROM t MINUS SELECT a FROM u", core.SetExcept, false},
		{"except distinct", "SELECT a FROM t EXCEPT DISTINCT SELECT a FROM u", core.SetExcept, false},
		{"intersect", "SELECT a FROM t INTERSECT SELECT a FROM u", core.SetIntersect, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseOne(t, tt.sql, oracle.Oracle).(*core.SelectStmt)
			op, ok := sel.Body.(*core.SetOperation)
			require.True(t, ok)
			assert.Equal(t, tt.wantOp, op.Op)
			assert.Equal(t, tt.wantAll, op.All)
		})
	}
}

func TestParseIntersectBindsTighter(t *testing.T) {
	sel := parseOne(t, "SELECT 1 FROM a UNION SELECT 2 FROM b INTERSECT SELECT 3 FROM c", trino.Trino).(*core.SelectStmt)
	union, ok := sel.Body.(*core.SetOperation)
	require.True(t, ok)
	assert.Equal(t, core.SetUnion, union.Op)

	right, ok := union.Right.(*core.SetOperation)
	require.True(t, ok)
	assert.Equal(t, core.SetIntersect, right.Op)
}

func TestParseRowLimits(t *testing.T) {
	tests := []struct {
		name       string
		sql        string
		d          *dialect.Dialect
		wantLimit  string
		wantOffset bool
	}{
		{"trino limit", "SELECT a FROM t LIMIT 10", trino.Trino, "10", false},
		{"fetch first", "SELECT a FROM t FETCH FIRST 5 ROWS ONLY", oracle.Oracle, "5", false},
		{"fetch next implicit one", "SELECT a FROM t FETCH NEXT ROW ONLY", oracle.Oracle, "1", false},
		{"offset fetch", "SELECT a FROM t OFFSET 2 ROWS FETCH FIRST 3 ROWS ONLY", oracle.Oracle, "3", true},
		{"limit offset", "SELECT a FROM t OFFSET 2 LIMIT 3", trino.Trino, "3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseOne(t, tt.sql, tt.d).(*core.SelectStmt)
			lit, ok := sel.Limit.(*core.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.wantLimit, lit.Value)
			assert.Equal(t, tt.wantOffset, sel.Offset != nil)
		})
	}
}

func TestParseWith(t *testing.T) {
	sel := parseOne(t, "WITH x (a) AS (SELECT 1 FROM dual), y AS (SELECT a FROM x) SELECT a FROM y", oracle.Oracle).(*core.SelectStmt)
	require.NotNil(t, sel.With)
	require.Len(t, sel.With.CTEs, 2)
	assert.Equal(t, "x", sel.With.CTEs[0].Name.Name)
	assert.Len(t, sel.With.CTEs[0].Columns, 1)
	assert.NotNil(t, sel.With.CTEs[1].Query)
}

func TestParseJoins(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		wantType core.JoinType
		natural  bool
		using    int
	}{
		{"left outer", "SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id", core.JoinLeft, false, 0},
		{"right", "SELECT * FROM a RIGHT JOIN b ON a.id = b.id", core.JoinRight, false, 0},
		{"full", "SELECT * FROM a FULL JOIN b ON a.id = b.id", core.JoinFull, false, 0},
		{"cross", "SELECT * FROM a CROSS JOIN b", core.JoinCross, false, 0},
		{"natural", "SELECT * FROM a NATURAL JOIN b", core.JoinInner, true, 0},
		{"using", "SELECT * FROM a JOIN b USING (id, region)", core.JoinInner, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := selectCore(t, parseOne(t, tt.sql, trino.Trino))
			require.Len(t, sc.From, 1)
			join, ok := sc.From[0].(*core.JoinExpr)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, join.Type)
			assert.Equal(t, tt.natural, join.Natural)
			assert.Len(t, join.Using, tt.using)
		})
	}
}

func TestParseFromItems(t *testing.T) {
	sc := selectCore(t, parseOne(t, "SELECT * FROM hr.emp e, (SELECT id FROM dept) d", oracle.Oracle))
	require.Len(t, sc.From, 2)

	tn, ok := sc.From[0].(*core.TableName)
	require.True(t, ok)
	assert.Equal(t, "hr", tn.Schema.Name)
	assert.Equal(t, "emp", tn.Name.Name)
	assert.Equal(t, "e", tn.Alias.Name)

	dt, ok := sc.From[1].(*core.DerivedTable)
	require.True(t, ok)
	assert.Equal(t, "d", dt.Alias.Name)
	assert.NotNil(t, dt.Query)
}

// ---------- Expressions ----------

func TestParsePrecedence(t *testing.T) {
	expr, err := parser.ParseExpr("a + b * c = d OR NOT e AND f", trino.Trino)
	require.NoError(t, err)

	or, ok := expr.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.OR, or.Op)

	eq, ok := or.Left.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.EQ, eq.Op)

	plus, ok := eq.Left.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, plus.Op)
	mul, ok := plus.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)

	and, ok := or.Right.(*core.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AND, and.Op)
	_, ok = and.Left.(*core.UnaryExpr)
	assert.True(t, ok)
}

func TestParsePredicates(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		want    core.Kind
		wantNot bool
		negated func(core.Expr) bool
	}{
		{"not in", "a NOT IN (1, 2)", core.KindInExpr, true, func(e core.Expr) bool { return e.(*core.InExpr).Not }},
		{"in subquery", "a IN (SELECT b FROM t)", core.KindInExpr, false, func(e core.Expr) bool { return e.(*core.InExpr).Not }},
		{"between", "a BETWEEN 1 AND 2", core.KindBetweenExpr, false, func(e core.Expr) bool { return e.(*core.BetweenExpr).Not }},
		{"not like escape", "a NOT LIKE 'x!%' ESCAPE '!'", core.KindLikeExpr, true, func(e core.Expr) bool { return e.(*core.LikeExpr).Not }},
		{"is not null", "a IS NOT NULL", core.KindIsNullExpr, true, func(e core.Expr) bool { return e.(*core.IsNullExpr).Not }},
		{"not exists", "NOT EXISTS (SELECT 1 FROM t)", core.KindExistsExpr, true, func(e core.Expr) bool { return e.(*core.ExistsExpr).Not }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.sql, oracle.Oracle)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Kind())
			assert.Equal(t, tt.wantNot, tt.negated(expr))
		})
	}
}

func TestParseOuterJoinMarker(t *testing.T) {
	sc := selectCore(t, parseOne(t, "SELECT * FROM a, b WHERE a.id = b.id(+)", oracle.Oracle))
	eq, ok := sc.Where.(*core.BinaryExpr)
	require.True(t, ok)
	marker, ok := eq.Right.(*core.OuterJoinMarker)
	require.True(t, ok)
	col, ok := marker.Expr.(*core.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "id", col.Name.Name)
}

func TestParseFunctions(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		wantName string
		check    func(t *testing.T, fn *core.FuncCall)
	}{
		{"upper cased name", "nvl(a, 0)", "NVL", func(t *testing.T, fn *core.FuncCall) {
			assert.Len(t, fn.Args, 2)
		}},
		{"distinct", "count(DISTINCT a)", "COUNT", func(t *testing.T, fn *core.FuncCall) {
			assert.True(t, fn.Distinct)
		}},
		{"niladic", "CURRENT_DATE", "CURRENT_DATE", func(t *testing.T, fn *core.FuncCall) {
			assert.True(t, fn.NoParens)
		}},
		{"window", "ROW_NUMBER() OVER (PARTITION BY d ORDER BY s DESC ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)", "ROW_NUMBER", func(t *testing.T, fn *core.FuncCall) {
			require.NotNil(t, fn.Over)
			assert.Len(t, fn.Over.PartitionBy, 1)
			assert.Len(t, fn.Over.OrderBy, 1)
			require.NotNil(t, fn.Over.Frame)
			assert.Equal(t, "ROWS", fn.Over.Frame.Type)
			assert.Equal(t, "UNBOUNDED PRECEDING", fn.Over.Frame.Start.Kind)
			assert.Equal(t, "CURRENT ROW", fn.Over.Frame.End.Kind)
		}},
		{"within group", "LISTAGG(name, ',') WITHIN GROUP (ORDER BY name)", "LISTAGG", func(t *testing.T, fn *core.FuncCall) {
			assert.Len(t, fn.WithinGroup, 1)
		}},
		{"qualified", "pkg.fn(1)", "PKG.FN", nil},
		{"left string function", "LEFT(s, 2)", "LEFT", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.sql, oracle.Oracle)
			require.NoError(t, err)
			fn, ok := expr.(*core.FuncCall)
			require.True(t, ok, "got %T", expr)
			assert.Equal(t, tt.wantName, fn.Name)
			if tt.check != nil {
				tt.check(t, fn)
			}
		})
	}
}

func TestParseCastsAndTypedLiterals(t *testing.T) {
	tests := []struct {
		name       string
		sql        string
		wantType   string
		wantParams []string
	}{
		{"varchar2 byte", "CAST(a AS VARCHAR2(20 BYTE))", "VARCHAR2", []string{"20"}},
		{"number", "CAST(a AS NUMBER(10, 2))", "NUMBER", []string{"10", "2"}},
		{"double precision", "CAST(a AS DOUBLE PRECISION)", "DOUBLE PRECISION", nil},
		{"with time zone", "CAST(a AS TIMESTAMP(3) WITH TIME ZONE)", "TIMESTAMP WITH TIME ZONE", []string{"3"}},
		{"date literal", "DATE '2024-01-31'", "DATE", nil},
		{"timestamp literal", "TIMESTAMP '2024-01-31 10:00:00'", "TIMESTAMP", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.sql, oracle.Oracle)
			require.NoError(t, err)
			cast, ok := expr.(*core.CastExpr)
			require.True(t, ok, "got %T", expr)
			assert.Equal(t, tt.wantType, cast.Type.Name)
			assert.Equal(t, tt.wantParams, cast.Type.Params)
		})
	}
}

func TestParseCaseAndInterval(t *testing.T) {
	expr, err := parser.ParseExpr("CASE status WHEN 1 THEN 'a' WHEN 2 THEN 'b' ELSE 'c' END", oracle.Oracle)
	require.NoError(t, err)
	c, ok := expr.(*core.CaseExpr)
	require.True(t, ok)
	assert.NotNil(t, c.Operand)
	assert.Len(t, c.Whens, 2)
	assert.NotNil(t, c.Else)

	expr, err = parser.ParseExpr("INTERVAL '1' DAY", trino.Trino)
	require.NoError(t, err)
	iv, ok := expr.(*core.IntervalExpr)
	require.True(t, ok)
	assert.Equal(t, "DAY", iv.Unit)
}

func TestParseQuotedIdentifiers(t *testing.T) {
	expr, err := parser.ParseExpr(`"Emp"."Name"`, oracle.Oracle)
	require.NoError(t, err)
	col, ok := expr.(*core.ColumnRef)
	require.True(t, ok)
	require.Len(t, col.Qualifier, 1)
	assert.Equal(t, core.Ident{Name: "Emp", Quoted: true}, col.Qualifier[0])
	assert.Equal(t, core.Ident{Name: "Name", Quoted: true}, col.Name)
}

// ---------- DML ----------

func TestParseInsert(t *testing.T) {
	ins := parseOne(t, "INSERT INTO s.t (a, b) VALUES (1, 'x'), (2, 'y')", trino.Trino).(*core.InsertStmt)
	assert.Equal(t, "t", ins.Table.Name.Name)
	assert.Len(t, ins.Columns, 2)
	assert.Len(t, ins.Rows, 2)
	assert.Nil(t, ins.Query)

	ins = parseOne(t, "INSERT INTO t SELECT a FROM u", oracle.Oracle).(*core.InsertStmt)
	assert.NotNil(t, ins.Query)
	assert.Empty(t, ins.Rows)
}

func TestParseUpdateDelete(t *testing.T) {
	upd := parseOne(t, "UPDATE emp e SET e.salary = salary * 2, bonus = 0 WHERE id = 1", oracle.Oracle).(*core.UpdateStmt)
	assert.Equal(t, "e", upd.Table.Alias.Name)
	require.Len(t, upd.Set, 2)
	assert.Equal(t, "salary", upd.Set[0].Column.Name)
	assert.NotNil(t, upd.Where)

	del := parseOne(t, "DELETE emp WHERE id = 1", oracle.Oracle).(*core.DeleteStmt)
	assert.Equal(t, "emp", del.Table.Name.Name)
	assert.NotNil(t, del.Where)
}

// ---------- DDL ----------

func TestParseCreateTable(t *testing.T) {
	sql := `CREATE GLOBAL TEMPORARY TABLE hr.emp_tmp (
		id NUMBER(10) NOT NULL PRIMARY KEY,
		name VARCHAR2(100 CHAR) DEFAULT 'n/a',
		hired DATE
	) ON COMMIT PRESERVE ROWS TABLESPACE users PCTFREE 10 STORAGE (INITIAL 64K NEXT 1M) NOLOGGING`

	cr := parseOne(t, sql, oracle.Oracle).(*core.CreateStmt)
	assert.Equal(t, core.ObjectTable, cr.Object)
	assert.True(t, cr.Global)
	assert.True(t, cr.Temporary)
	assert.Equal(t, "emp_tmp", cr.Name.Name.Name)

	require.Len(t, cr.Columns, 3)
	assert.True(t, cr.Columns[0].NotNull)
	assert.True(t, cr.Columns[0].PrimaryKey)
	assert.Equal(t, []string{"100"}, cr.Columns[1].Type.Params)
	assert.NotNil(t, cr.Columns[1].Default)

	keys := make([]string, len(cr.Properties))
	for i, prop := range cr.Properties {
		keys[i] = prop.Key
	}
	assert.Equal(t, []string{"ON COMMIT", "TABLESPACE", "PCTFREE", "STORAGE", "NOLOGGING"}, keys)
	assert.Equal(t, "PRESERVE ROWS", cr.Properties[0].Value)
	assert.Equal(t, "INITIAL 64K NEXT 1M", cr.Properties[3].Value)
}

func TestParseCreateTableAsWithProperties(t *testing.T) {
	sql := `CREATE TABLE IF NOT EXISTS hive.s.t WITH (format = 'ORC', bucket_count = 8) AS SELECT a FROM u`
	cr := parseOne(t, sql, trino.Trino).(*core.CreateStmt)
	assert.True(t, cr.IfNotExists)
	assert.Equal(t, "hive", cr.Name.Catalog.Name)
	assert.NotNil(t, cr.Query)
	require.Len(t, cr.Properties, 2)
	assert.Equal(t, core.Property{Style: core.PropertyKeyValue, Key: "format", Value: "'ORC'"}, cr.Properties[0])
	assert.Equal(t, "8", cr.Properties[1].Value)
}

func TestParseCreateViewAndDrop(t *testing.T) {
	cr := parseOne(t, "CREATE OR REPLACE VIEW v (x, y) AS SELECT a, b FROM t", oracle.Oracle).(*core.CreateStmt)
	assert.Equal(t, core.ObjectView, cr.Object)
	assert.True(t, cr.OrReplace)
	assert.Len(t, cr.Columns, 2)

	drop := parseOne(t, "DROP TABLE emp CASCADE CONSTRAINTS PURGE", oracle.Oracle).(*core.DropStmt)
	assert.Equal(t, core.ObjectTable, drop.Object)
	assert.True(t, drop.Cascade)
	assert.True(t, drop.Purge)

	drop = parseOne(t, "DROP VIEW IF EXISTS v", trino.Trino).(*core.DropStmt)
	assert.Equal(t, core.ObjectView, drop.Object)
	assert.True(t, drop.IfExists)
}

// ---------- Errors ----------

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		wantMsg string
		line    int
	}{
		{"missing from target", "SELECT a FROM", "expected identifier", 1},
		{"unterminated string", "SELECT 'abc", "unterminated string literal", 1},
		{"unterminated identifier", `SELECT "abc`, "unterminated quoted identifier", 1},
		{"stray character", "SELECT a\nFROM t ?", "unexpected character", 2},
		{"connect by", "SELECT a FROM t CONNECT BY PRIOR a = b", "CONNECT BY", 1},
		{"procedural block", "BEGIN NULL; END;", "procedural block is not supported", 1},
		{"table constraint", "CREATE TABLE t (a INT, PRIMARY KEY (a))", "table constraint is not supported", 1},
		{"too many parts", "SELECT * FROM a.b.c.d", "too many parts", 1},
		{"garbage after statement", "SELECT a FROM t t2 t3", "expected ; or end of input", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.sql, oracle.Oracle)
			require.Error(t, err)

			var pe *parser.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Contains(t, pe.Message, tt.wantMsg)
			assert.Equal(t, tt.line, pe.Pos.Line)
		})
	}
}

func TestParseTableRef(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []string
		wantErr bool
	}{
		{"bare", "emp", []string{"emp"}, false},
		{"schema", " hr.emp ", []string{"hr", "emp"}, false},
		{"catalog", "hive.hr.emp", []string{"hive", "hr", "emp"}, false},
		{"quoted", `"HR"."Emp"`, []string{"HR", "Emp"}, false},
		{"trailing text", "hr.emp x", nil, true},
		{"empty", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := parser.ParseTableRef(tt.text, trino.Trino)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			var got []string
			for _, part := range ref.Parts() {
				got = append(got, part.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// ---------- Spans and comments ----------

func TestParseSpans(t *testing.T) {
	stmts, err := parser.Parse("SELECT a\nFROM t;\nSELECT b FROM u", oracle.Oracle)
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	first := stmts[0].Info().Span
	assert.Equal(t, 1, first.Start.Line)
	assert.Equal(t, 2, first.End.Line)
	assert.Equal(t, 7, first.End.Column)

	second := stmts[1].Info().Span
	assert.Equal(t, 3, second.Start.Line)
	assert.Equal(t, 1, second.Start.Column)
}

func TestParseAttachesComments(t *testing.T) {
	sql := `-- report query
SELECT a, -- first column
       b
FROM t /* source */;
SELECT 1 FROM dual`

	stmts, err := parser.Parse(sql, oracle.Oracle)
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	first := stmts[0].(*core.SelectStmt)
	require.Len(t, first.LeadingComments, 1)
	assert.Equal(t, "report query", first.LeadingComments[0].Body())

	sc := first.Body.(*core.SelectCore)
	require.Len(t, sc.Columns[0].TrailingComments, 1)
	assert.Equal(t, "first column", sc.Columns[0].TrailingComments[0].Body())

	assert.Contains(t, trailingComments(first), "source")
	assert.False(t, stmts[1].Info().HasComments())
}

func trailingComments(n core.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.Info().TrailingComments {
		out = append(out, c.Body())
	}
	for _, child := range n.Children() {
		out = append(out, trailingComments(child)...)
	}
	return out
}

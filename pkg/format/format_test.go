package format_test

import (
	"testing"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/trino"
	"github.com/leapstack-labs/sqlequiv/pkg/format"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, sql string, d *dialect.Dialect) core.Stmt {
	t.Helper()
	stmts, err := parser.Parse(sql, d)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	return stmts[0]
}

func TestFormat_Compact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple select", "select a, b from t", "SELECT a, b FROM t"},
		{"where", "SELECT a FROM t WHERE x = 1 AND y <> 2", "SELECT a FROM t WHERE x = 1 AND y <> 2"},
		{"table alias gets AS", "SELECT e.a FROM emp e", "SELECT e.a FROM emp AS e"},
		{"column alias", "SELECT a col1 FROM t", "SELECT a AS col1 FROM t"},
		{"star", "SELECT t.* FROM t", "SELECT t.* FROM t"},
		{"distinct group having", "SELECT DISTINCT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1",
			"SELECT DISTINCT a, COUNT(*) FROM t GROUP BY a HAVING COUNT(*) > 1"},
		{"order by", "SELECT a FROM t ORDER BY a DESC NULLS FIRST, b", "SELECT a FROM t ORDER BY a DESC NULLS FIRST, b"},
		{"joins", "SELECT * FROM a INNER JOIN b ON a.id = b.id LEFT OUTER JOIN c USING (id)",
			"SELECT * FROM a JOIN b ON a.id = b.id LEFT JOIN c USING (id)"},
		{"subquery", "SELECT * FROM (SELECT a FROM t) x WHERE a IN (SELECT b FROM u)",
			"SELECT * FROM (SELECT a FROM t) AS x WHERE a IN (SELECT b FROM u)"},
		{"cte", "WITH x AS (SELECT 1 AS n) SELECT n FROM x", "WITH x AS (SELECT 1 AS n) SELECT n FROM x"},
		{"union all", "SELECT a FROM t UNION ALL SELECT a FROM u", "SELECT a FROM t UNION ALL SELECT a FROM u"},
		{"string escaping", "SELECT 'it''s' FROM t", "SELECT 'it''s' FROM t"},
		{"case", "SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t", "SELECT CASE WHEN a = 1 THEN 'x' ELSE 'y' END FROM t"},
		{"cast", "SELECT CAST(a AS decimal(10,2)) FROM t", "SELECT CAST(a AS DECIMAL(10, 2)) FROM t"},
		{"window", "SELECT ROW_NUMBER() OVER (PARTITION BY d ORDER BY s) FROM t",
			"SELECT ROW_NUMBER() OVER (PARTITION BY d ORDER BY s) FROM t"},
		{"predicates", "SELECT a FROM t WHERE a NOT BETWEEN 1 AND 2 OR b IS NOT NULL OR c NOT LIKE 'x%'",
			"SELECT a FROM t WHERE a NOT BETWEEN 1 AND 2 OR b IS NOT NULL OR c NOT LIKE 'x%'"},
		{"niladic", "SELECT current_date FROM t", "SELECT CURRENT_DATE FROM t"},
		{"limit", "SELECT a FROM t OFFSET 5 LIMIT 10", "SELECT a FROM t OFFSET 5 LIMIT 10"},
		{"insert", "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')", "INSERT INTO t (a, b) VALUES (1, 'x'), (2, 'y')"},
		{"update", "UPDATE t SET a = 1, b = b + 1 WHERE id = 3", "UPDATE t SET a = 1, b = b + 1 WHERE id = 3"},
		{"delete", "DELETE FROM t WHERE id = 3", "DELETE FROM t WHERE id = 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input, trino.Trino)
			assert.Equal(t, tt.expected, format.Format(stmt, trino.Trino))
		})
	}
}

func TestFormat_Pretty(t *testing.T) {
	stmt := mustParse(t, "SELECT a, b AS c FROM t WHERE x = 1 ORDER BY a", trino.Trino)
	expected := `SELECT
  a,
  b AS c
FROM t
WHERE
  x = 1
ORDER BY
  a
`
	assert.Equal(t, expected, format.Format(stmt, trino.Trino, format.WithPretty()))
}

func TestFormat_PrettySubquery(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM (SELECT a FROM t) x", trino.Trino)
	expected := `SELECT
  *
FROM (
  SELECT
    a
  FROM t
) AS x
`
	assert.Equal(t, expected, format.Format(stmt, trino.Trino, format.WithPretty()))
}

func TestFormat_RowLimitByDialect(t *testing.T) {
	stmt := mustParse(t, "SELECT a FROM t OFFSET 2 ROWS FETCH FIRST 5 ROWS ONLY", oracle.Oracle)

	assert.Equal(t, "SELECT a FROM t OFFSET 2 ROWS FETCH FIRST 5 ROWS ONLY", format.Format(stmt, oracle.Oracle))
	assert.Equal(t, "SELECT a FROM t OFFSET 2 LIMIT 5", format.Format(stmt, trino.Trino))
}

func TestFormat_Precedence(t *testing.T) {
	col := func(name string) core.Expr { return &core.ColumnRef{Name: core.Ident{Name: name}} }
	bin := func(l core.Expr, op token.TokenType, r core.Expr) core.Expr {
		return &core.BinaryExpr{Left: l, Op: op, Right: r}
	}

	tests := []struct {
		name     string
		expr     core.Expr
		expected string
	}{
		{"lower precedence child", bin(col("a"), token.STAR, bin(col("b"), token.PLUS, col("c"))), "a * (b + c)"},
		{"higher precedence child", bin(col("a"), token.PLUS, bin(col("b"), token.STAR, col("c"))), "a + b * c"},
		{"left associative", bin(bin(col("a"), token.MINUS, col("b")), token.MINUS, col("c")), "a - b - c"},
		{"right grouping kept", bin(col("a"), token.MINUS, bin(col("b"), token.MINUS, col("c"))), "a - (b - c)"},
		{"or under and", bin(bin(col("a"), token.OR, col("b")), token.AND, col("c")), "(a OR b) AND c"},
		{"not over and", &core.UnaryExpr{Op: token.NOT, Expr: bin(col("a"), token.AND, col("b"))}, "NOT (a AND b)"},
		{"double negation", &core.UnaryExpr{Op: token.MINUS, Expr: &core.UnaryExpr{Op: token.MINUS, Expr: col("a")}}, "-(-a)"},
		{"comparison subject", &core.IsNullExpr{Expr: bin(col("a"), token.EQ, col("b"))}, "(a = b) IS NULL"},
		{"outer join marker", &core.OuterJoinMarker{Expr: col("a")}, "a(+)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, format.Format(tt.expr, trino.Trino))
		})
	}
}

func TestFormat_QuotedIdentifiers(t *testing.T) {
	stmt := mustParse(t, `SELECT "Mixed Case", plain FROM "My""Table"`, trino.Trino)
	assert.Equal(t, `SELECT "Mixed Case", plain FROM "My""Table"`, format.Format(stmt, trino.Trino))
}

func TestFormat_Comments(t *testing.T) {
	sql := "-- header\nSELECT a, -- first\n  b\nFROM t"
	stmt := mustParse(t, sql, oracle.Oracle)

	assert.Equal(t, "/* header */ SELECT a /* first */, b FROM t", format.Format(stmt, oracle.Oracle))
}

func TestFormat_DDL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		d        *dialect.Dialect
		expected string
	}{
		{
			name:     "oracle temporary table",
			input:    "CREATE GLOBAL TEMPORARY TABLE t (id NUMBER(10) NOT NULL, name VARCHAR2(20)) ON COMMIT PRESERVE ROWS",
			d:        oracle.Oracle,
			expected: "CREATE GLOBAL TEMPORARY TABLE t (id NUMBER(10) NOT NULL, name VARCHAR2(20)) ON COMMIT PRESERVE ROWS",
		},
		{
			name:     "trino properties",
			input:    "CREATE TABLE IF NOT EXISTS s.t COMMENT 'x' WITH (format = 'ORC', bucket_count = 8) AS SELECT a FROM u",
			d:        trino.Trino,
			expected: "CREATE TABLE IF NOT EXISTS s.t COMMENT 'x' WITH (format = 'ORC', bucket_count = 8) AS SELECT a FROM u",
		},
		{
			name:     "view",
			input:    "CREATE OR REPLACE VIEW v AS SELECT a FROM t",
			d:        trino.Trino,
			expected: "CREATE OR REPLACE VIEW v AS SELECT a FROM t",
		},
		{
			name:     "drop",
			input:    "DROP TABLE IF EXISTS t CASCADE",
			d:        trino.Trino,
			expected: "DROP TABLE IF EXISTS t CASCADE",
		},
		{
			name:     "timestamp with time zone",
			input:    "CREATE TABLE t (ts TIMESTAMP(3) WITH TIME ZONE)",
			d:        trino.Trino,
			expected: "CREATE TABLE t (ts TIMESTAMP(3) WITH TIME ZONE)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := mustParse(t, tt.input, tt.d)
			assert.Equal(t, tt.expected, format.Format(stmt, tt.d))
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"SELECT a + b * (c - d) AS x FROM t WHERE NOT (a = 1 OR b = 2) AND c IN (1, 2)",
		"SELECT * FROM a JOIN (b JOIN c ON b.id = c.id) ON a.id = b.id",
		"SELECT a FROM t UNION SELECT a FROM u INTERSECT SELECT a FROM v",
		"(SELECT a FROM t UNION SELECT a FROM u) INTERSECT SELECT a FROM v",
		"SELECT CASE x WHEN 1 THEN 'a' END, -(-a), a || b FROM t",
		"SELECT LISTAGG(n, ',') WITHIN GROUP (ORDER BY n) FROM t",
		"SELECT SUM(a) OVER (ORDER BY b ROWS BETWEEN 1 PRECEDING AND CURRENT ROW) FROM t",
		"SELECT a FROM t WHERE EXISTS (SELECT 1 FROM u WHERE u.id = t.id) AND a LIKE 'x!%' ESCAPE '!'",
	}

	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			first := format.Format(mustParse(t, sql, trino.Trino), trino.Trino)
			second := format.Format(mustParse(t, first, trino.Trino), trino.Trino)
			assert.Equal(t, first, second)

			pretty := format.Format(mustParse(t, sql, trino.Trino), trino.Trino, format.WithPretty())
			assert.Equal(t, first, format.Format(mustParse(t, pretty, trino.Trino), trino.Trino))
		})
	}
}

func TestScript(t *testing.T) {
	stmts, err := parser.Parse("SELECT 1 FROM dual; SELECT 2 FROM dual", oracle.Oracle)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 FROM dual;\n\nSELECT 2 FROM dual", format.Script(stmts, oracle.Oracle))
}

func TestDataType(t *testing.T) {
	assert.Equal(t, "DECIMAL(10, 2)", format.DataType(core.DataType{Name: "DECIMAL", Params: []string{"10", "2"}}))
	assert.Equal(t, "TIMESTAMP(6) WITH LOCAL TIME ZONE",
		format.DataType(core.DataType{Name: "TIMESTAMP WITH LOCAL TIME ZONE", Params: []string{"6"}}))
	assert.Equal(t, "VARCHAR", format.DataType(core.DataType{Name: "VARCHAR"}))
}

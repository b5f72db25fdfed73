package transpile

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/trino"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

func init() {
	Register(NewOracleToTrino())
}

// OracleToTrino translates Oracle statements to Trino.
type OracleToTrino struct {
	*BaseTranslator
}

// NewOracleToTrino creates the Oracle to Trino translator.
func NewOracleToTrino() *OracleToTrino {
	t := &OracleToTrino{BaseTranslator: NewBaseTranslator(oracle.Oracle.Name, trino.Trino.Name)}
	b := t.BaseTranslator

	b.functionRenames = map[string]string{
		"NVL": "COALESCE",
	}

	b.specialFunctions = map[string]FuncHandler{
		"NVL2":         t.nvl2,
		"DECODE":       t.decode,
		"INSTR":        t.instr,
		"TO_TIMESTAMP": t.toTimestamp,
		"TO_DATE":      t.toDate,
		"TO_CHAR":      t.toChar,
	}

	current := func(*core.ColumnRef) (core.Expr, error) {
		return &core.FuncCall{Name: "CURRENT_TIMESTAMP", NoParens: true}, nil
	}
	b.pseudoColumns = map[string]ColumnHandler{
		"SYSDATE":      current,
		"SYSTIMESTAMP": current,
		"ROWNUM": func(*core.ColumnRef) (core.Expr, error) {
			return nil, b.Errorf("ROWNUM is only supported as a top-level WHERE ROWNUM <= n or ROWNUM < n filter")
		},
	}

	b.typeMappings = map[string]TypeMapping{
		"VARCHAR2":      {Name: "VARCHAR"},
		"NVARCHAR2":     {Name: "VARCHAR"},
		"CHAR VARYING":  {Name: "VARCHAR"},
		"NUMBER":        {Name: "DECIMAL"},
		"CLOB":          {Name: "VARCHAR", DropParams: true},
		"NCLOB":         {Name: "VARCHAR", DropParams: true},
		"BINARY_DOUBLE": {Name: "DOUBLE", DropParams: true},
		"FLOAT":         {Name: "DOUBLE", DropParams: true},
		"BINARY_FLOAT":  {Name: "REAL", DropParams: true},
		"RAW":           {Name: "VARBINARY", DropParams: true},
		"BLOB":          {Name: "VARBINARY", DropParams: true},
	}

	for _, name := range []string{"CONNECT_BY_ROOT", "SYS_CONNECT_BY_PATH", "ROWIDTOCHAR", "USERENV"} {
		b.unsupported[name] = true
	}
	b.unsupportedPrefix = []string{"DBMS_"}

	b.stmtHandlers = []StmtHandler{t.removeDual, t.rownumToLimit}
	b.foldIdent = func(id core.Ident) core.Ident {
		if id.Quoted {
			return id
		}
		return core.Ident{Name: oracle.Oracle.NormalizeName(id.Name)}
	}
	b.dropTableClauses = true
	b.outerJoinMarkerErr = "the (+) outer join marker must be rewritten as an explicit OUTER JOIN"
	return t
}

// NVL2(a, b, c) → CASE WHEN a IS NOT NULL THEN b ELSE c END
func (t *OracleToTrino) nvl2(fn *core.FuncCall) (core.Expr, error) {
	if len(fn.Args) != 3 {
		return nil, t.Errorf("NVL2 takes exactly three arguments")
	}
	return &core.CaseExpr{
		NodeInfo: fn.NodeInfo,
		Whens: []*core.WhenClause{{
			Condition: &core.IsNullExpr{Expr: fn.Args[0], Not: true},
			Result:    fn.Args[1],
		}},
		Else: fn.Args[2],
	}, nil
}

// DECODE(x, s1, r1, ..., [default]) → CASE WHEN x = s1 THEN r1 ... ELSE default END.
// A NULL search value matches with IS NULL, as in Oracle.
func (t *OracleToTrino) decode(fn *core.FuncCall) (core.Expr, error) {
	if len(fn.Args) < 3 {
		return nil, t.Errorf("DECODE takes at least three arguments")
	}
	subject := fn.Args[0]
	c := &core.CaseExpr{NodeInfo: fn.NodeInfo}

	rest := fn.Args[1:]
	for len(rest) >= 2 {
		search, result := rest[0], rest[1]
		var cond core.Expr
		if lit, ok := search.(*core.Literal); ok && lit.Type == core.LiteralNull {
			cond = &core.IsNullExpr{Expr: subject}
		} else {
			cond = &core.BinaryExpr{Left: subject, Op: token.EQ, Right: search}
		}
		c.Whens = append(c.Whens, &core.WhenClause{Condition: cond, Result: result})
		rest = rest[2:]
	}
	if len(rest) == 1 {
		c.Else = rest[0]
	}
	return c, nil
}

// INSTR(s, sub) → STRPOS(s, sub)
func (t *OracleToTrino) instr(fn *core.FuncCall) (core.Expr, error) {
	if len(fn.Args) != 2 {
		return nil, t.Errorf("INSTR with a start position or occurrence has no direct equivalent")
	}
	cp := *fn
	cp.Name = "STRPOS"
	return &cp, nil
}

// TO_TIMESTAMP(x, f) → DATE_PARSE(x, f'), TO_TIMESTAMP(x) → CAST(x AS TIMESTAMP)
func (t *OracleToTrino) toTimestamp(fn *core.FuncCall) (core.Expr, error) {
	switch len(fn.Args) {
	case 1:
		return &core.CastExpr{NodeInfo: fn.NodeInfo, Expr: fn.Args[0], Type: core.DataType{Name: "TIMESTAMP"}}, nil
	case 2:
		return t.dateParse(fn)
	default:
		return nil, t.Errorf("TO_TIMESTAMP with NLS parameters is not supported")
	}
}

// TO_DATE(x, f) → CAST(DATE_PARSE(x, f') AS DATE), TO_DATE(x) → CAST(x AS DATE)
func (t *OracleToTrino) toDate(fn *core.FuncCall) (core.Expr, error) {
	cast := &core.CastExpr{NodeInfo: fn.NodeInfo, Type: core.DataType{Name: "DATE"}}
	switch len(fn.Args) {
	case 1:
		cast.Expr = fn.Args[0]
	case 2:
		parse, err := t.dateParse(fn)
		if err != nil {
			return nil, err
		}
		parse.NodeInfo = core.NodeInfo{}
		cast.Expr = parse
	default:
		return nil, t.Errorf("TO_DATE with NLS parameters is not supported")
	}
	return cast, nil
}

// TO_CHAR(d, f) → DATE_FORMAT(d, f'), TO_CHAR(x) → CAST(x AS VARCHAR)
func (t *OracleToTrino) toChar(fn *core.FuncCall) (core.Expr, error) {
	switch len(fn.Args) {
	case 1:
		return &core.CastExpr{NodeInfo: fn.NodeInfo, Expr: fn.Args[0], Type: core.DataType{Name: "VARCHAR"}}, nil
	case 2:
		format, err := t.formatArg(fn, "TO_CHAR")
		if err != nil {
			return nil, err
		}
		return &core.FuncCall{NodeInfo: fn.NodeInfo, Name: "DATE_FORMAT", Args: []core.Expr{fn.Args[0], format}}, nil
	default:
		return nil, t.Errorf("TO_CHAR with NLS parameters is not supported")
	}
}

func (t *OracleToTrino) dateParse(fn *core.FuncCall) (*core.FuncCall, error) {
	format, err := t.formatArg(fn, fn.Name)
	if err != nil {
		return nil, err
	}
	return &core.FuncCall{NodeInfo: fn.NodeInfo, Name: "DATE_PARSE", Args: []core.Expr{fn.Args[0], format}}, nil
}

// formatArg converts the second argument, which must be a string literal
// format model.
func (t *OracleToTrino) formatArg(fn *core.FuncCall, name string) (core.Expr, error) {
	lit, ok := fn.Args[1].(*core.Literal)
	if !ok || lit.Type != core.LiteralString {
		return nil, t.Errorf(name + " format must be a string literal")
	}
	return &core.Literal{NodeInfo: lit.NodeInfo, Type: core.LiteralString, Value: ConvertDateFormat(lit.Value)}, nil
}

// removeDual drops FROM DUAL from a single-table select.
func (t *OracleToTrino) removeDual(stmt *core.SelectStmt) (*core.SelectStmt, error) {
	sc, ok := stmt.Body.(*core.SelectCore)
	if !ok || len(sc.From) != 1 {
		return stmt, nil
	}
	tn, ok := sc.From[0].(*core.TableName)
	if !ok || !tn.Schema.IsZero() || !strings.EqualFold(tn.Name.Name, "DUAL") || (tn.Name.Quoted && tn.Name.Name != "DUAL") {
		return stmt, nil
	}
	core2 := *sc
	core2.From = nil
	cp := *stmt
	cp.Body = &core2
	return &cp, nil
}

// rownumToLimit turns a top-level WHERE ROWNUM <= n (or < n) conjunct into
// LIMIT n (or n-1).
func (t *OracleToTrino) rownumToLimit(stmt *core.SelectStmt) (*core.SelectStmt, error) {
	sc, ok := stmt.Body.(*core.SelectCore)
	if !ok || sc.Where == nil {
		return stmt, nil
	}

	conjuncts := splitAnd(sc.Where, nil)
	for i, c := range conjuncts {
		limit, ok := rownumBound(c)
		if !ok {
			continue
		}
		if stmt.Limit != nil || len(sc.GroupBy) > 0 || len(stmt.OrderBy) > 0 {
			return nil, t.Errorf("ROWNUM combined with ORDER BY, GROUP BY or a row limit changes meaning when rewritten as LIMIT")
		}
		rest := append(append([]core.Expr(nil), conjuncts[:i]...), conjuncts[i+1:]...)

		core2 := *sc
		core2.Where = joinAnd(rest)
		cp := *stmt
		cp.Body = &core2
		cp.Limit = &core.Literal{Type: core.LiteralNumber, Value: strconv.Itoa(limit)}
		return &cp, nil
	}
	return stmt, nil
}

// rownumBound matches ROWNUM <= n, ROWNUM < n, n >= ROWNUM and n > ROWNUM.
func rownumBound(e core.Expr) (int, bool) {
	b, ok := unparen(e).(*core.BinaryExpr)
	if !ok {
		return 0, false
	}
	op, col, lit := b.Op, b.Left, b.Right
	if isRownum(b.Right) {
		col, lit = b.Right, b.Left
		switch op {
		case token.GE:
			op = token.LE
		case token.GT:
			op = token.LT
		default:
			return 0, false
		}
	}
	if !isRownum(col) {
		return 0, false
	}
	n, ok := intLiteral(lit)
	if !ok {
		return 0, false
	}
	switch op {
	case token.LE:
		return max(n, 0), true
	case token.LT:
		return max(n-1, 0), true
	}
	return 0, false
}

func isRownum(e core.Expr) bool {
	col, ok := unparen(e).(*core.ColumnRef)
	return ok && len(col.Qualifier) == 0 && !col.Name.Quoted && strings.EqualFold(col.Name.Name, "ROWNUM")
}

func intLiteral(e core.Expr) (int, bool) {
	lit, ok := unparen(e).(*core.Literal)
	if !ok || lit.Type != core.LiteralNumber {
		return 0, false
	}
	n, err := strconv.Atoi(lit.Value)
	return n, err == nil
}

func splitAnd(e core.Expr, dst []core.Expr) []core.Expr {
	if b, ok := unparen(e).(*core.BinaryExpr); ok && b.Op == token.AND {
		dst = splitAnd(b.Left, dst)
		return splitAnd(b.Right, dst)
	}
	return append(dst, e)
}

func joinAnd(exprs []core.Expr) core.Expr {
	if len(exprs) == 0 {
		return nil
	}
	out := exprs[0]
	for _, e := range exprs[1:] {
		out = &core.BinaryExpr{Left: out, Op: token.AND, Right: e}
	}
	return out
}

func unparen(e core.Expr) core.Expr {
	for {
		p, ok := e.(*core.ParenExpr)
		if !ok {
			return e
		}
		e = p.Expr
	}
}

package core

import "fmt"

// Kind tags each node type in the closed node set.
type Kind uint8

// Node kinds.
const (
	KindInvalid Kind = iota

	// Statements
	KindSelectStmt
	KindInsertStmt
	KindUpdateStmt
	KindDeleteStmt
	KindCreateStmt
	KindDropStmt

	// Query structure
	KindWithClause
	KindCTE
	KindSetOperation
	KindSelectCore
	KindSelectItem
	KindOrderItem
	KindValuesRow
	KindAssignment
	KindColumnDef

	// Table references
	KindTableName
	KindDerivedTable
	KindJoinExpr

	// Expressions
	KindColumnRef
	KindLiteral
	KindUnaryExpr
	KindBinaryExpr
	KindFuncCall
	KindWindowSpec
	KindCastExpr
	KindCaseExpr
	KindWhenClause
	KindInExpr
	KindBetweenExpr
	KindIsNullExpr
	KindLikeExpr
	KindParenExpr
	KindStarExpr
	KindSubqueryExpr
	KindExistsExpr
	KindIntervalExpr
	KindOuterJoinMarker

	kindCount
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindSelectStmt:      "SelectStmt",
	KindInsertStmt:      "InsertStmt",
	KindUpdateStmt:      "UpdateStmt",
	KindDeleteStmt:      "DeleteStmt",
	KindCreateStmt:      "CreateStmt",
	KindDropStmt:        "DropStmt",
	KindWithClause:      "WithClause",
	KindCTE:             "CTE",
	KindSetOperation:    "SetOperation",
	KindSelectCore:      "SelectCore",
	KindSelectItem:      "SelectItem",
	KindOrderItem:       "OrderItem",
	KindValuesRow:       "ValuesRow",
	KindAssignment:      "Assignment",
	KindColumnDef:       "ColumnDef",
	KindTableName:       "TableName",
	KindDerivedTable:    "DerivedTable",
	KindJoinExpr:        "JoinExpr",
	KindColumnRef:       "ColumnRef",
	KindLiteral:         "Literal",
	KindUnaryExpr:       "UnaryExpr",
	KindBinaryExpr:      "BinaryExpr",
	KindFuncCall:        "FuncCall",
	KindWindowSpec:      "WindowSpec",
	KindCastExpr:        "CastExpr",
	KindCaseExpr:        "CaseExpr",
	KindWhenClause:      "WhenClause",
	KindInExpr:          "InExpr",
	KindBetweenExpr:     "BetweenExpr",
	KindIsNullExpr:      "IsNullExpr",
	KindLikeExpr:        "LikeExpr",
	KindParenExpr:       "ParenExpr",
	KindStarExpr:        "StarExpr",
	KindSubqueryExpr:    "SubqueryExpr",
	KindExistsExpr:      "ExistsExpr",
	KindIntervalExpr:    "IntervalExpr",
	KindOuterJoinMarker: "OuterJoinMarker",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

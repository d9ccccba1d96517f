package ast

// Clone returns a deep copy of the expression. Rewrite passes clone before
// mutating so the caller-visible tree never changes shape under a render.
func Clone(e Expr) Expr {
	if e == nil {
		return nil
	}

	switch n := e.(type) {
	case *Literal:
		c := *n
		return &c
	case *BitString:
		c := *n
		return &c
	case *HexString:
		c := *n
		return &c
	case *ByteString:
		c := *n
		return &c
	case *Parameter:
		c := *n
		return &c
	case *Column:
		c := *n
		return &c
	case *Star:
		return &Star{}
	case *Paren:
		return &Paren{This: Clone(n.This)}
	case *Binary:
		return &Binary{Left: Clone(n.Left), Op: n.Op, Right: Clone(n.Right)}
	case *Unary:
		return &Unary{Op: n.Op, This: Clone(n.This)}
	case *Func:
		return &Func{Name: n.Name, Distinct: n.Distinct, Args: cloneList(n.Args)}
	case *Cast:
		return &Cast{This: Clone(n.This), To: CloneDataType(n.To)}
	case *TryCast:
		return &TryCast{This: Clone(n.This), To: CloneDataType(n.To)}
	case *Interval:
		return &Interval{This: Clone(n.This), Unit: n.Unit}
	case *Array:
		return &Array{Expressions: cloneList(n.Expressions)}
	case *Ordered:
		return &Ordered{This: Clone(n.This), Desc: n.Desc, NullsFirst: n.NullsFirst, NullsLast: n.NullsLast}
	case *Order:
		out := &Order{This: Clone(n.This)}
		for _, o := range n.Expressions {
			out.Expressions = append(out.Expressions, Clone(o).(*Ordered))
		}
		return out
	case *Select:
		out := &Select{
			Expressions: cloneList(n.Expressions),
			From:        Clone(n.From),
			Where:       Clone(n.Where),
			Limit:       Clone(n.Limit),
		}
		if n.OrderBy != nil {
			out.OrderBy = Clone(n.OrderBy).(*Order)
		}
		return out
	case *CreateTable:
		out := &CreateTable{Name: n.Name, Temporary: n.Temporary, IfNotExists: n.IfNotExists}
		for _, col := range n.Columns {
			out.Columns = append(out.Columns, CloneColumnDef(col))
		}
		return out
	case *Command:
		c := *n
		return &c
	case *DataType:
		return CloneDataType(n)
	case *ColumnDef:
		return CloneColumnDef(n)
	case *ColumnConstraint:
		return &ColumnConstraint{Constraint: n.Constraint, Always: n.Always, Value: Clone(n.Value)}
	case *DateAdd:
		return &DateAdd{This: Clone(n.This), Expression: Clone(n.Expression), Unit: n.Unit}
	case *DateSub:
		return &DateSub{This: Clone(n.This), Expression: Clone(n.Expression), Unit: n.Unit}
	case *DateDiff:
		return &DateDiff{This: Clone(n.This), Expression: Clone(n.Expression), Unit: n.Unit}
	case *StrToTime:
		return &StrToTime{This: Clone(n.This), Format: n.Format}
	case *TimeToStr:
		return &TimeToStr{This: Clone(n.This), Format: n.Format}
	case *UnixToTime:
		return &UnixToTime{This: Clone(n.This)}
	case *TimeStrToTime:
		return &TimeStrToTime{This: Clone(n.This)}
	case *CurrentDate:
		return &CurrentDate{}
	case *CurrentTimestamp:
		return &CurrentTimestamp{}
	case *Substring:
		return &Substring{This: Clone(n.This), Start: Clone(n.Start), Length: Clone(n.Length)}
	case *GroupConcat:
		return &GroupConcat{This: Clone(n.This), Separator: Clone(n.Separator)}
	case *Trim:
		return &Trim{This: Clone(n.This), Expression: Clone(n.Expression), Position: n.Position}
	case *StrPosition:
		return &StrPosition{This: Clone(n.This), Substr: Clone(n.Substr)}
	case *JSONExtract:
		return &JSONExtract{This: Clone(n.This), Path: Clone(n.Path)}
	case *JSONExtractScalar:
		return &JSONExtractScalar{This: Clone(n.This), Path: Clone(n.Path)}
	case *JSONBExtract:
		return &JSONBExtract{This: Clone(n.This), Path: Clone(n.Path)}
	case *JSONBExtractScalar:
		return &JSONBExtractScalar{This: Clone(n.This), Path: Clone(n.Path)}
	case *JSONBContains:
		return &JSONBContains{This: Clone(n.This), Key: Clone(n.Key)}
	case *RegexpLike:
		return &RegexpLike{This: Clone(n.This), Pattern: Clone(n.Pattern)}
	case *RegexpILike:
		return &RegexpILike{This: Clone(n.This), Pattern: Clone(n.Pattern)}
	default:
		return e
	}
}

// CloneDataType returns a deep copy of a data type.
func CloneDataType(t *DataType) *DataType {
	if t == nil {
		return nil
	}
	return &DataType{
		Type:   t.Type,
		Params: cloneList(t.Params),
		Elem:   CloneDataType(t.Elem),
	}
}

// CloneColumnDef returns a deep copy of a column definition, including its
// constraint list.
func CloneColumnDef(c *ColumnDef) *ColumnDef {
	if c == nil {
		return nil
	}
	out := &ColumnDef{Name: c.Name, Type: CloneDataType(c.Type)}
	for _, con := range c.Constraints {
		out.Constraints = append(out.Constraints, Clone(con).(*ColumnConstraint))
	}
	return out
}

func cloneList(list []Expr) []Expr {
	if list == nil {
		return nil
	}
	out := make([]Expr, len(list))
	for i, e := range list {
		out[i] = Clone(e)
	}
	return out
}

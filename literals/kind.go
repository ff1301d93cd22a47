package literals

// KindOf names the kind of v: "null", "list", "integer", "unsigned",
// "float", "decimal", "datetime", "boolean", "enum", "text" or "function".
func KindOf(v Value) string {
	return v.Accept(kindVisitor{}).Text
}

type kindVisitor struct{}

var _ Visitor = kindVisitor{}

func (kindVisitor) VisitNull(Null) Literal         { return Bare("null") }
func (kindVisitor) VisitList(List) Literal         { return Bare("list") }
func (kindVisitor) VisitInteger(Integer) Literal   { return Bare("integer") }
func (kindVisitor) VisitUnsigned(Unsigned) Literal { return Bare("unsigned") }
func (kindVisitor) VisitFloat(Float) Literal       { return Bare("float") }
func (kindVisitor) VisitDecimal(Decimal) Literal   { return Bare("decimal") }
func (kindVisitor) VisitDateTime(DateTime) Literal { return Bare("datetime") }
func (kindVisitor) VisitBoolean(Boolean) Literal   { return Bare("boolean") }
func (kindVisitor) VisitEnum(Enum) Literal         { return Bare("enum") }
func (kindVisitor) VisitText(Text) Literal         { return Bare("text") }
func (kindVisitor) VisitFunction(Function) Literal { return Bare("function") }

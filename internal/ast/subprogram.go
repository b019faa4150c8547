package ast

// SubprogramSpec is the specification part shared by subprogram
// declarations, bodies, protected-type items and interface subprograms.
type SubprogramSpec interface {
	Designator() Ident
	Parameters() []InterfaceDecl
	isSubprogramSpec()
}

type FunctionSpec struct {
	Name   Ident
	Params []InterfaceDecl
	Return string
	Impure bool
}

type ProcedureSpec struct {
	Name   Ident
	Params []InterfaceDecl
}

func (f *FunctionSpec) Designator() Ident           { return f.Name }
func (f *FunctionSpec) Parameters() []InterfaceDecl { return f.Params }
func (*FunctionSpec) isSubprogramSpec()             {}

func (p *ProcedureSpec) Designator() Ident           { return p.Name }
func (p *ProcedureSpec) Parameters() []InterfaceDecl { return p.Params }
func (*ProcedureSpec) isSubprogramSpec()             {}

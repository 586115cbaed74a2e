package minifier

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/parse/v2"
	jsparse "github.com/tdewolff/parse/v2/js"

	"minifyall/pkg/document"
)

// DropConsoleCalls parses src and replaces every call on a console member
// (console.log(x), console.warn.apply(console, a)) with `void 0`, so the
// surrounding statement keeps its shape. Literals are never touched.
func DropConsoleCalls(src string) (string, error) {
	ast, err := jsparse.Parse(parse.NewInputString(src), jsparse.Options{})
	if err != nil {
		return "", err
	}
	jsparse.Walk(consoleDropper{}, ast)

	var buf bytes.Buffer
	ast.JS(&buf)
	return buf.String(), nil
}

type consoleDropper struct{}

func (v consoleDropper) Enter(n jsparse.INode) jsparse.IVisitor {
	switch n := n.(type) {
	case *jsparse.ExprStmt:
		n.Value = dropConsole(n.Value)
	case *jsparse.ReturnStmt:
		n.Value = dropConsole(n.Value)
	case *jsparse.IfStmt:
		n.Cond = dropConsole(n.Cond)
	case *jsparse.GroupExpr:
		n.X = dropConsole(n.X)
	case *jsparse.UnaryExpr:
		n.X = dropConsole(n.X)
	case *jsparse.BinaryExpr:
		n.X = dropConsole(n.X)
		n.Y = dropConsole(n.Y)
	case *jsparse.CondExpr:
		n.Cond = dropConsole(n.Cond)
		n.X = dropConsole(n.X)
		n.Y = dropConsole(n.Y)
	case *jsparse.CommaExpr:
		for i := range n.List {
			n.List[i] = dropConsole(n.List[i])
		}
	case *jsparse.Arg:
		n.Value = dropConsole(n.Value)
	case *jsparse.BindingElement:
		n.Default = dropConsole(n.Default)
	}
	return v
}

func (consoleDropper) Exit(jsparse.INode) {}

func dropConsole(e jsparse.IExpr) jsparse.IExpr {
	call, ok := e.(*jsparse.CallExpr)
	if !ok || !isConsoleMember(call.X) {
		return e
	}
	return &jsparse.UnaryExpr{
		Op: jsparse.VoidToken,
		X:  &jsparse.LiteralExpr{TokenType: jsparse.DecimalToken, Data: []byte("0")},
	}
}

// isConsoleMember reports whether e is a property chain rooted at console.
func isConsoleMember(e jsparse.IExpr) bool {
	member := false
	for {
		switch x := e.(type) {
		case *jsparse.DotExpr:
			e, member = x.X, true
		case *jsparse.IndexExpr:
			e, member = x.X, true
		case *jsparse.Var:
			return member && string(x.Name()) == "console"
		default:
			return false
		}
	}
}

func (mn *Minifier) minifyJS(src string, lang document.Language) (string, error) {
	if mn.opts.JS.DropConsole {
		dropped, err := DropConsoleCalls(src)
		if err != nil {
			return "", fmt.Errorf("minify %s: %w", lang, err)
		}
		src = dropped
	}
	out, err := mn.m.String(mediaJS, src)
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", lang, err)
	}
	return out, nil
}

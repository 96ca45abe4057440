// Package reachability answers "where does this value come from / go to"
// for the identifier under a caret by slicing, collecting and hydrating
// the data flow around it.
package reachability

import (
	"fmt"

	"github.com/xonecas/reach/internal/treesitter"
)

// QuestionKind is the reachability question an identifier invites.
type QuestionKind int

const (
	// NoQuestion means the identifier is neither a call argument nor a
	// local declaration.
	NoQuestion QuestionKind = iota
	// ArgumentOrigin asks how a value passed to a call was produced.
	ArgumentOrigin
	// VariableMutation asks how a freshly declared local changes.
	VariableMutation
)

// Question is what the handler offers to answer for an identifier.
type Question struct {
	Kind    QuestionKind
	Subject string
}

// Classify picks the question for id. Arguments take precedence over
// declarations.
func Classify(id *treesitter.Ident) Question {
	switch {
	case id.IsCallArgument():
		return Question{Kind: ArgumentOrigin, Subject: id.Name}
	case id.IsLocalDeclaration():
		return Question{Kind: VariableMutation, Subject: id.Name}
	}
	return Question{Kind: NoQuestion, Subject: id.Name}
}

// Text renders the question for display, or "" for NoQuestion.
func (q Question) Text() string {
	switch q.Kind {
	case ArgumentOrigin:
		return fmt.Sprintf("How was %s created?", q.subject("this argument"))
	case VariableMutation:
		return fmt.Sprintf("How is %s modified?", q.subject("this variable"))
	}
	return ""
}

func (q Question) subject(fallback string) string {
	if q.Subject == "" {
		return fallback
	}
	return "`" + q.Subject + "`"
}

// Direction is the slice direction that answers the question: origins are
// found backwards, mutations forwards.
func (q Question) Direction() treesitter.Direction {
	if q.Kind == ArgumentOrigin {
		return treesitter.Backward
	}
	return treesitter.Forward
}

// Package checker decides whether a mod tree is laid out the way the game expects and, when it is
// not, plans and applies the moves and deletions that fix it
package checker

import (
	"errors"
	"io"

	"github.com/m-manu/ddda-modfix/entity"
	"github.com/m-manu/ddda-modfix/rules"
	"github.com/m-manu/ddda-modfix/tree"
	"github.com/sirupsen/logrus"
)

// DefaultQuarantineName is the top-level folder deleted entries are gathered in during a repair
const DefaultQuarantineName = "__quarantine__"

// Checker classifies and repairs mod trees. It holds no per-tree state, so one Checker may serve
// concurrent callers as long as each works on its own tree
type Checker struct {
	rules      *rules.RuleSet
	log        *logrus.Entry
	quarantine string
}

// Option customizes a Checker
type Option func(*Checker)

// WithQuarantineName sets the base name of the quarantine folder used while repairing
func WithQuarantineName(name string) Option {
	return func(c *Checker) {
		if name != "" {
			c.quarantine = name
		}
	}
}

// New creates a Checker for the given rule set (nil means rules.Default()). Diagnostics go to log;
// a nil log discards them
func New(ruleSet *rules.RuleSet, log *logrus.Entry, opts ...Option) *Checker {
	if ruleSet == nil {
		ruleSet = rules.Default()
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = logrus.NewEntry(discard)
	}
	c := &Checker{
		rules:      ruleSet,
		log:        log.WithField("sub-component", "checker"),
		quarantine: DefaultQuarantineName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate classifies the tree and returns only the verdict
func (c *Checker) Validate(root *tree.Entry) (Verdict, error) {
	result, err := c.Classify(root)
	if err != nil {
		return Invalid, err
	}
	return result.Verdict, nil
}

// Classify runs the cheap validity probe followed by the full repair scan over the tree.
// The returned plan references entries of root and is only meaningful until root is modified
func (c *Checker) Classify(root *tree.Entry) (*Result, error) {
	cl := newClassification(c.rules, c.log, root)
	if err := root.Walk(tree.VisitorFunc(cl.probe), tree.Separator); err != nil {
		return nil, err
	}
	if err := root.Walk(tree.VisitorFunc(cl.scan), tree.Separator); err != nil {
		return nil, err
	}
	result := &Result{
		Verdict:   Invalid,
		Plan:      cl.plan,
		Ambiguous: cl.ambiguous,
	}
	switch {
	case cl.plan.Len() > 0:
		result.Verdict = Fixable
	case cl.valid:
		result.Verdict = Valid
	}
	c.log.WithFields(logrus.Fields{
		"verdict": result.Verdict,
		"moves":   len(cl.plan.Moves),
		"deletes": len(cl.plan.Deletes),
	}).Debug("classified mod tree")
	return result, nil
}

// Repair classifies the tree afresh and applies the resulting plan to it in place. It returns the
// same root along with a journal of the steps performed. A valid tree is returned untouched; an
// invalid one yields ErrNotFixable. On a *RepairError the tree is partially modified
func (c *Checker) Repair(root *tree.Entry) (*tree.Entry, []entity.Step, error) {
	result, err := c.Classify(root)
	if err != nil {
		return root, nil, err
	}
	switch result.Verdict {
	case Valid:
		return root, nil, nil
	case Invalid:
		return root, nil, ErrNotFixable
	}
	a := newApplier(root, c.log)
	steps, err := a.apply(result.Plan, c.quarantine)
	if err != nil {
		var repairErr *RepairError
		if !errors.As(err, &repairErr) {
			err = &RepairError{Err: err}
		}
		c.log.WithError(err).Warn("repair aborted")
	}
	return root, steps, err
}

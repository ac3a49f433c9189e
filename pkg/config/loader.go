// Package config loads a declarative problem file into a *csp.CSP[string],
// the configuration layer SPEC_FULL.md §6 adds on top of the library. It
// follows gitrdm-gokando's convention of keeping parsing and validation in
// one small, well-tested file rather than spreading a config DSL across
// the package (the teacher's examples construct CSPs by hand in Go; this
// is the declarative alternative a CLI consumer needs).
package config

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gokando-csp/pkg/csp"
)

// Document is the top-level shape of a problem file.
//
//	variables:
//	  x: [red, green, blue]
//	  y: [red, green, blue]
//	constraints:
//	  - label: x!=y
//	    scope: [x, y]
//	    predicate: "x != y"
//	  - label: xy-allowed
//	    scope: [x, y]
//	    tuples:
//	      - [red, green]
//	      - [green, red]
type Document struct {
	Variables   map[string][]string `yaml:"variables"`
	Constraints []constraintDoc     `yaml:"constraints"`
}

type constraintDoc struct {
	Label     string     `yaml:"label"`
	Scope     []string   `yaml:"scope"`
	Predicate string     `yaml:"predicate"`
	Tuples    [][]string `yaml:"tuples"`
}

// LoadCSP parses a YAML problem document from r into a CSP[string].
// Every structural problem found (undeclared scope variable, a
// constraint with neither predicate nor tuples, a malformed predicate
// expression) is collected via go-multierror rather than reported one at
// a time.
func LoadCSP(r io.Reader) (*csp.CSP[string], error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding problem document")
	}
	return buildCSP(doc)
}

func buildCSP(doc Document) (*csp.CSP[string], error) {
	c := csp.NewCSP[string]()
	vars := make(map[string]*csp.Variable[string], len(doc.Variables))

	var result *multierror.Error
	for label, values := range doc.Variables {
		dom, err := csp.NewDomain(values)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "variable %q", label))
			continue
		}
		v := csp.NewVariable(label, dom)
		vars[label] = v
		if err := c.AddVariable(v); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result.ErrorOrNil() != nil {
		return nil, result
	}

	for _, cd := range doc.Constraints {
		scope, err := resolveScope(cd, vars)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		con, err := buildConstraint(cd, scope)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if err := c.AddConstraint(con); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return c, nil
}

func resolveScope(cd constraintDoc, vars map[string]*csp.Variable[string]) ([]*csp.Variable[string], error) {
	scope := make([]*csp.Variable[string], 0, len(cd.Scope))
	var result *multierror.Error
	for _, label := range cd.Scope {
		v, ok := vars[label]
		if !ok {
			result = multierror.Append(result, errors.Wrapf(csp.ErrScopeMismatch, "constraint %q references undeclared variable %q", cd.Label, label))
			continue
		}
		scope = append(scope, v)
	}
	return scope, result.ErrorOrNil()
}

func buildConstraint(cd constraintDoc, scope []*csp.Variable[string]) (csp.Constraint[string], error) {
	switch {
	case len(cd.Tuples) > 0:
		tuples := make(csp.Assignment2D[string], 0, len(cd.Tuples))
		for _, row := range cd.Tuples {
			if len(row) != len(scope) {
				return nil, errors.Wrapf(csp.ErrScopeMismatch, "constraint %q: tuple %v has arity %d, scope has %d", cd.Label, row, len(row), len(scope))
			}
			asn := make(csp.Assignment[string], len(scope))
			for i, v := range scope {
				asn[i] = csp.VV(v.Label(), row[i])
			}
			tuples = append(tuples, asn)
		}
		return csp.NewExtensional(cd.Label, scope, tuples)

	case cd.Predicate != "":
		formula, err := ParsePredicate(cd.Predicate)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %q", cd.Label)
		}
		return csp.NewIntensional(cd.Label, scope, formula), nil

	default:
		return nil, fmt.Errorf("%w: constraint %q has neither predicate nor tuples", csp.ErrScopeMismatch, cd.Label)
	}
}

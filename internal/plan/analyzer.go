package plan

import (
	"fmt"

	"github.com/imlabdb/imlabdb/internal/queryast"
	"github.com/imlabdb/imlabdb/internal/storage"
	"github.com/imlabdb/imlabdb/internal/value"
)

// binding names which TableScan, and which of its IUs, a bare column
// identifier resolves to.
type binding struct {
	scan *TableScan
	iu   *IU
}

// Analyze turns a parsed query into a rooted operator tree: every
// single-relation equality predicate is pushed down into a Selection
// directly above its TableScan (testable property: pushdown), every
// equality between columns of two different relations becomes an
// InnerJoin's key pair rather than a post-join filter (testable property:
// join-key extraction), and a greedy left-deep join order is built by
// walking the FROM list, connecting each next relation to whatever's
// already joined via an available key.
func Analyze(arena *Arena, db *storage.Database, q *queryast.Query) (*Print, error) {
	if len(q.FromList) == 0 {
		return nil, fmt.Errorf("plan: query has no FROM relations")
	}

	scans := make([]*TableScan, len(q.FromList))
	seen := make(map[string]bool, len(q.FromList))
	for i, name := range q.FromList {
		if seen[name] {
			return nil, fmt.Errorf("plan: relation %q appears twice in FROM; self-joins need alias support this grammar doesn't have", name)
		}
		seen[name] = true
		rel, ok := db.Relation(name)
		if !ok {
			return nil, fmt.Errorf("plan: unknown relation %q", name)
		}
		scans[i] = NewTableScan(arena, rel)
	}

	columnOwner := make(map[string][]binding)
	for _, scan := range scans {
		for _, iu := range scan.CollectIUs() {
			columnOwner[iu.Column] = append(columnOwner[iu.Column], binding{scan: scan, iu: iu})
		}
	}
	resolve := func(name string) (binding, error) {
		matches := columnOwner[name]
		switch len(matches) {
		case 0:
			return binding{}, fmt.Errorf("plan: unknown column %q", name)
		case 1:
			return matches[0], nil
		default:
			return binding{}, fmt.Errorf("plan: ambiguous column %q: present on more than one FROM relation", name)
		}
	}

	type joinEdge struct {
		a, b     *TableScan
		aIU, bIU *IU
	}
	pushdown := make(map[*TableScan][]Expr)
	var edges []joinEdge

	for _, pred := range q.Where {
		lhs, err := resolve(pred.LHS)
		if err != nil {
			return nil, err
		}
		switch pred.Kind {
		case queryast.ColumnRef:
			rhs, err := resolve(pred.RHS)
			if err != nil {
				return nil, err
			}
			if rhs.scan == lhs.scan {
				eq, err := NewEquals(arena, NewIURef(arena, lhs.iu), NewIURef(arena, rhs.iu))
				if err != nil {
					return nil, fmt.Errorf("plan: predicate %s = %s: %w", pred.LHS, pred.RHS, err)
				}
				pushdown[lhs.scan] = append(pushdown[lhs.scan], eq)
			} else {
				edges = append(edges, joinEdge{a: lhs.scan, aIU: lhs.iu, b: rhs.scan, bIU: rhs.iu})
			}
		default:
			v, err := constantFor(lhs.iu.Typ, pred)
			if err != nil {
				return nil, fmt.Errorf("plan: predicate %s = %s: %w", pred.LHS, pred.RHS, err)
			}
			eq, err := NewEquals(arena, NewIURef(arena, lhs.iu), NewConstant(arena, v))
			if err != nil {
				return nil, fmt.Errorf("plan: predicate %s = %s: %w", pred.LHS, pred.RHS, err)
			}
			pushdown[lhs.scan] = append(pushdown[lhs.scan], eq)
		}
	}

	applyPushdown := func(scan *TableScan) (Operator, error) {
		preds := pushdown[scan]
		if len(preds) == 0 {
			return scan, nil
		}
		combined := preds[0]
		for _, p := range preds[1:] {
			var err error
			combined, err = NewAnd(arena, combined, p)
			if err != nil {
				return nil, fmt.Errorf("plan: combining predicates on %q: %w", scan.Relation.Name, err)
			}
		}
		return NewSelection(scan, combined), nil
	}

	joined := map[*TableScan]bool{scans[0]: true}
	current, err := applyPushdown(scans[0])
	if err != nil {
		return nil, err
	}
	remaining := len(scans) - 1

	usedEdge := make([]bool, len(edges))
	for remaining > 0 {
		progressed := false
		for _, scan := range scans {
			if joined[scan] {
				continue
			}
			var leftKeys, rightKeys []*IU
			for i, e := range edges {
				if usedEdge[i] {
					continue
				}
				switch {
				case e.a == scan && joined[e.b]:
					leftKeys = append(leftKeys, e.bIU)
					rightKeys = append(rightKeys, e.aIU)
					usedEdge[i] = true
				case e.b == scan && joined[e.a]:
					leftKeys = append(leftKeys, e.aIU)
					rightKeys = append(rightKeys, e.bIU)
					usedEdge[i] = true
				}
			}
			if len(leftKeys) == 0 {
				continue
			}
			probe, err := applyPushdown(scan)
			if err != nil {
				return nil, err
			}
			current = NewInnerJoin(arena, current, probe, leftKeys, rightKeys)
			joined[scan] = true
			remaining--
			progressed = true
		}
		if !progressed {
			return nil, fmt.Errorf("plan: query would require a cross product across %d relations; add a join predicate connecting them", remaining+1)
		}
	}

	// Any leftover cross-relation equalities not used as a spanning-tree
	// join key (a redundant triangle constraint) become a post-join filter.
	for i, e := range edges {
		if usedEdge[i] {
			continue
		}
		eq, err := NewEquals(arena, NewIURef(arena, e.aIU), NewIURef(arena, e.bIU))
		if err != nil {
			return nil, fmt.Errorf("plan: redundant join predicate: %w", err)
		}
		current = NewSelection(current, eq)
	}

	selectIUs := make([]*IU, len(q.SelectList))
	for i, name := range q.SelectList {
		b, err := resolve(name)
		if err != nil {
			return nil, err
		}
		selectIUs[i] = b.iu
	}

	root := NewPrint(arena, current, selectIUs)
	root.Prepare(nil, nil)
	return root, nil
}

func constantFor(t value.Type, pred queryast.Predicate) (value.Value, error) {
	return t.CastFromText(pred.RHS)
}

// Package cdcl implements the conflict-driven clause-learning SAT engine of
// spec §4.5: unit propagation, an implication graph, 1-UIP-style conflict
// analysis, clause learning, and non-chronological backtracking.
package cdcl

import (
	"sort"

	"satlp/internal/clauseset"
)

// Outcome is the result of a Solve call.
type Outcome struct {
	SAT bool
	// Assignment is the total variable → value map, present only when SAT.
	Assignment map[int]bool
	Stats      Stats
}

// Stats carries solve-run observability that doesn't affect solver
// behavior. VariableActivity counts how many times each variable appeared
// in a conflict-analysis resolution step; branching order stays the
// deterministic first-unassigned-by-id order regardless of these counts.
type Stats struct {
	VariableActivity map[int]int
}

// node is one vertex of the implication graph: one per variable, carrying
// its assigned value and level, the antecedent clause that forced it (nil
// for a decision variable), and the parent/child edges of that antecedent.
type node struct {
	value      *bool
	level      int
	parents    []int
	children   []int
	antecedent *clauseset.Clause
}

// Solver runs the CDCL loop over a fixed original clause set. A Solver is
// single-use: call Solve once and discard it.
type Solver struct {
	delta   *clauseset.Formula
	learnts *clauseset.Formula
	vars    []int
	m       map[int]*bool
	nodes   map[int]*node

	currLevel int

	branchingHist map[int]int
	propagateHist map[int][]clauseset.Literal
	activity      map[int]int
}

// New builds a solver over delta's clauses. The variable universe is every
// variable id appearing in any clause of delta.
func New(delta *clauseset.Formula) *Solver {
	s := &Solver{
		delta:         delta,
		learnts:       clauseset.NewFormula(),
		m:             make(map[int]*bool),
		nodes:         make(map[int]*node),
		branchingHist: make(map[int]int),
		propagateHist: make(map[int][]clauseset.Literal),
		activity:      make(map[int]int),
	}
	seen := make(map[int]bool)
	for _, c := range delta.All() {
		for _, lit := range c.Literals() {
			v := lit.Var()
			if !seen[v] {
				seen[v] = true
				s.vars = append(s.vars, v)
			}
		}
	}
	sort.Ints(s.vars)
	for _, v := range s.vars {
		s.m[v] = nil
		s.nodes[v] = &node{level: -1}
	}
	return s
}

// Solve runs the main CDCL loop to completion (spec §4.5 "Main loop").
func (s *Solver) Solve() Outcome {
	for {
		conflict := s.unitPropagate()
		if conflict != nil {
			level, learnt, ok := s.conflictAnalyze(*conflict)
			if !ok {
				return Outcome{SAT: false, Stats: Stats{VariableActivity: s.activity}}
			}
			s.learnts.Add(learnt)
			s.backtrack(level)
			s.currLevel = level
			continue
		}
		if s.allAssigned() {
			return Outcome{SAT: true, Assignment: s.finalAssignment(), Stats: Stats{VariableActivity: s.activity}}
		}

		v := s.firstUnassigned()
		s.currLevel++
		val := true
		s.m[v] = &val
		s.branchingHist[s.currLevel] = v
		s.propagateHist[s.currLevel] = nil
		s.updateGraph(v, nil)
	}
}

func (s *Solver) allAssigned() bool {
	for _, v := range s.vars {
		if s.m[v] == nil {
			return false
		}
	}
	return true
}

func (s *Solver) firstUnassigned() int {
	for _, v := range s.vars {
		if s.m[v] == nil {
			return v
		}
	}
	return 0
}

func (s *Solver) finalAssignment() map[int]bool {
	out := make(map[int]bool, len(s.vars))
	for _, v := range s.vars {
		out[v] = *s.m[v]
	}
	return out
}

// updateGraph records var's current value/level in the implication graph
// and, if clause is its antecedent, wires the clause's other variables as
// parents (spec §3 "Implication graph").
func (s *Solver) updateGraph(v int, clause *clauseset.Clause) {
	n := s.nodes[v]
	n.value = s.m[v]
	n.level = s.currLevel
	if clause != nil {
		for _, lit := range clause.Literals() {
			pv := lit.Var()
			if pv == v {
				continue
			}
			n.parents = append(n.parents, pv)
			s.nodes[pv].children = append(s.nodes[pv].children, v)
		}
		n.antecedent = clause
	}
}

// literalValue is the literal's truth value under m, or unassigned (nil).
func (s *Solver) literalValue(lit clauseset.Literal) *bool {
	val := s.m[lit.Var()]
	if val == nil {
		return nil
	}
	v := *val != lit.Negated()
	return &v
}

// clauseValue is true if any literal is true, false if all are false, and
// unassigned (nil) otherwise (spec §4.5 "Unit propagation").
func (s *Solver) clauseValue(c clauseset.Clause) *bool {
	sawUnassigned := false
	for _, lit := range c.Literals() {
		v := s.literalValue(lit)
		if v == nil {
			sawUnassigned = true
			continue
		}
		if *v {
			t := true
			return &t
		}
	}
	if sawUnassigned {
		return nil
	}
	f := false
	return &f
}

// isUnit reports whether c has exactly one unassigned literal and every
// other literal false (or is a unit-length clause whose sole literal is
// unassigned), returning that literal.
func (s *Solver) isUnit(c clauseset.Clause) (clauseset.Literal, bool) {
	var unassigned clauseset.Literal
	unassignedCount := 0
	falseCount := 0
	total := 0
	for _, lit := range c.Literals() {
		total++
		v := s.literalValue(lit)
		if v == nil {
			unassigned = lit
			unassignedCount++
			continue
		}
		if !*v {
			falseCount++
		}
	}
	if unassignedCount != 1 {
		return 0, false
	}
	if falseCount == total-1 || total == 1 {
		return unassigned, true
	}
	return 0, false
}

type unitImplication struct {
	lit    clauseset.Literal
	clause clauseset.Clause
}

// unitPropagate repeatedly scans δ ∪ learnts to fixpoint, returning the
// falsified clause on conflict or nil once no more units can be derived
// (spec §4.5 "Unit propagation").
func (s *Solver) unitPropagate() *clauseset.Clause {
	for {
		var queue []unitImplication
		seen := make(map[string]bool)

		all := append(s.delta.All(), s.learnts.All()...)
		for _, c := range all {
			val := s.clauseValue(c)
			if val != nil && *val {
				continue
			}
			if val != nil && !*val {
				conflict := c
				return &conflict
			}
			lit, ok := s.isUnit(c)
			if !ok {
				continue
			}
			key := lit.String() + "|" + c.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			queue = append(queue, unitImplication{lit: lit, clause: c})
		}
		if len(queue) == 0 {
			return nil
		}
		for _, impl := range queue {
			v := impl.lit.Var()
			val := !impl.lit.Negated()
			s.m[v] = &val
			clause := impl.clause
			s.updateGraph(v, &clause)
			if hist, ok := s.propagateHist[s.currLevel]; ok {
				s.propagateHist[s.currLevel] = append(hist, impl.lit)
			}
		}
	}
}

// conflictAnalyze performs 1-UIP resolution starting from conflictClause,
// returning the backjump level and the learnt clause, or ok=false if the
// conflict occurs at level 0 (UNSAT) (spec §4.5 "Conflict analysis").
func (s *Solver) conflictAnalyze(conflictClause clauseset.Clause) (int, clauseset.Clause, bool) {
	if s.currLevel == 0 {
		return -1, clauseset.Clause{}, false
	}

	assignHistory := append([]clauseset.Literal{clauseset.Literal(s.branchingHist[s.currLevel])}, s.propagateHist[s.currLevel]...)

	pool := conflictClause
	var currLevelLits, prevLevelLits []clauseset.Literal

	litSetContains := func(set []clauseset.Literal, v int) bool {
		for _, l := range set {
			if l.Var() == v {
				return true
			}
		}
		return false
	}

	for {
		// Classify this round's pool literals into the persistent
		// curr/prev-level sets (additive: literals already classified in
		// an earlier round stay put).
		for _, lit := range pool.Literals() {
			if litSetContains(currLevelLits, lit.Var()) || litSetContains(prevLevelLits, lit.Var()) {
				continue
			}
			s.activity[lit.Var()]++
			if s.nodes[lit.Var()].level == s.currLevel {
				currLevelLits = append(currLevelLits, lit)
			} else {
				prevLevelLits = append(prevLevelLits, lit)
			}
		}

		if len(currLevelLits) == 1 {
			break
		}

		var lastAssigned clauseset.Literal
		found := false
		for i := len(assignHistory) - 1; i >= 0; i-- {
			cand := assignHistory[i]
			if litSetContains(currLevelLits, cand.Var()) {
				lastAssigned = cand
				found = true
				break
			}
		}
		if !found {
			break
		}

		var others []clauseset.Literal
		for _, lit := range currLevelLits {
			if lit.Var() != lastAssigned.Var() {
				others = append(others, lit)
			}
		}
		currLevelLits = others

		antecedent := s.nodes[lastAssigned.Var()].antecedent
		if antecedent == nil {
			pool = clauseset.NewClause()
			continue
		}
		pool = pool.Resolve(*antecedent, lastAssigned.Var())
	}

	learntLits := mergeLiteralSets(currLevelLits, prevLevelLits)
	learnt := clauseset.NewClause(learntLits...)

	level := s.currLevel - 1
	if len(prevLevelLits) > 0 {
		level = 0
		for _, lit := range prevLevelLits {
			if lv := s.nodes[lit.Var()].level; lv > level {
				level = lv
			}
		}
	}

	return level, learnt, true
}

func mergeLiteralSets(a, b []clauseset.Literal) []clauseset.Literal {
	seen := make(map[clauseset.Literal]bool, len(a)+len(b))
	out := make([]clauseset.Literal, 0, len(a)+len(b))
	for _, l := range a {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range b {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// backtrack undoes every assignment above level, trims the implication
// graph, and discards per-level history above level (spec §4.5
// "Backtracking").
func (s *Solver) backtrack(level int) {
	for v, n := range s.nodes {
		if n.level <= level {
			kept := n.children[:0:0]
			for _, child := range n.children {
				if s.nodes[child].level <= level {
					kept = append(kept, child)
				}
			}
			n.children = kept
			continue
		}
		n.value = nil
		n.level = -1
		n.parents = nil
		n.children = nil
		n.antecedent = nil
		s.m[v] = nil
	}

	for k := range s.propagateHist {
		if k > level {
			delete(s.propagateHist, k)
			delete(s.branchingHist, k)
		}
	}
}

package parser

// Parser is a grammar production: a function over (state, min_indent)
// producing progress, a value, the advanced state, and an error. error is
// nil on success; a non-nil error paired with MadeProgress is a committed
// failure that must propagate, while NoProgress+error lets a one_of
// caller try the next alternative (§4.1's progress semantics).
type Parser[T any] func(s State, minIndent int) (Progress, T, State, error)

// Map transforms a successful parse's value, leaving progress/state/error
// untouched.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(s State, minIndent int) (Progress, U, State, error) {
		prog, v, next, err := p(s, minIndent)
		if err != nil {
			var zero U
			return prog, zero, next, err
		}
		return prog, f(v), next, nil
	}
}

// Then runs p, then lets f inspect the partial result (and the state it
// produced) to decide how to continue — §4.1's and_then_with_indent_level,
// generalized over indent since Go threads minIndent as a plain argument
// already.
func Then[T, U any](p Parser[T], f func(T, State) Parser[U]) Parser[U] {
	return func(s State, minIndent int) (Progress, U, State, error) {
		prog1, v, next, err := p(s, minIndent)
		if err != nil {
			var zero U
			return prog1, zero, next, err
		}
		prog2, v2, next2, err2 := f(v, next)(next, minIndent)
		return prog1.Or(prog2), v2, next2, err2
	}
}

// And sequences two parsers, combining their values with combine.
// Progress from either taints the combined result, matching §4.1.
func And[A, B, R any](pa Parser[A], pb Parser[B], combine func(A, B) R) Parser[R] {
	return func(s State, minIndent int) (Progress, R, State, error) {
		var zero R
		prog1, a, next, err := pa(s, minIndent)
		if err != nil {
			return prog1, zero, next, err
		}
		prog2, b, next2, err2 := pb(next, minIndent)
		if err2 != nil {
			return prog1.Or(prog2), zero, next2, err2
		}
		return prog1.Or(prog2), combine(a, b), next2, nil
	}
}

// OneOf is §4.1's `one_of`: try each alternative in order; the first
// NoProgress failure is discarded and the next alternative is tried, but
// the first MadeProgress result — success or failure — short-circuits
// immediately. This is the load-bearing rule that lets the grammar report
// unambiguous errors without unlimited backtracking.
func OneOf[T any](alts ...Parser[T]) Parser[T] {
	return func(s State, minIndent int) (Progress, T, State, error) {
		var zero T
		for _, alt := range alts {
			prog, v, next, err := alt(s, minIndent)
			if prog == MadeProgress {
				return prog, v, next, err
			}
			if err == nil {
				return prog, v, next, nil
			}
			// NoProgress + err: try the next alternative.
		}
		return NoProgress, zero, s, ErrExpressionExpected(s.Pos())
	}
}

// Optional never fails: it returns (false, zero) when the child returns
// NoProgress, and propagates a MadeProgress failure untouched (§4.1).
func Optional[T any](p Parser[T]) Parser[struct {
	Present bool
	Value   T
}] {
	type out = struct {
		Present bool
		Value   T
	}
	return func(s State, minIndent int) (Progress, out, State, error) {
		prog, v, next, err := p(s, minIndent)
		if err != nil {
			if prog == NoProgress {
				return NoProgress, out{}, s, nil
			}
			return prog, out{}, next, err
		}
		return prog, out{Present: true, Value: v}, next, nil
	}
}

// Backtrackable turns a committed (MadeProgress) failure back into a
// NoProgress failure at this boundary, restoring the original state
// snapshot — §4.1's "backtrackable". Use sparingly: it is the escape
// hatch from the progress discipline, not the default.
func Backtrackable[T any](p Parser[T]) Parser[T] {
	return func(s State, minIndent int) (Progress, T, State, error) {
		_, v, next, err := p(s, minIndent)
		if err != nil {
			var zero T
			return NoProgress, zero, s, err
		}
		return MadeProgress, v, next, nil
	}
}

// Not is negative lookahead: succeeds with no consumption exactly when p
// fails; fails (NoProgress) when p succeeds. The grammar does not call it:
// the keyword-exclusion check (§4.2.3) is isKeywordStart in apply.go and
// the `!=` disambiguation (§4.2.2) is done inside parseUnaryNot.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return func(s State, minIndent int) (Progress, struct{}, State, error) {
		_, _, _, err := p(s, minIndent)
		if err == nil {
			return NoProgress, struct{}{}, s, newErr(KindEExpr, s.Pos(), "unexpected")
		}
		return NoProgress, struct{}{}, s, nil
	}
}

// ZeroOrMore repeats p until it returns NoProgress (success or failure),
// collecting every successful value (§4.1's Kleene closure). A
// MadeProgress failure mid-stream propagates immediately.
func ZeroOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(s State, minIndent int) (Progress, []T, State, error) {
		var out []T
		cur := s
		progress := NoProgress
		for {
			prog, v, next, err := p(cur, minIndent)
			if err != nil {
				if prog == MadeProgress {
					return progress.Or(prog), out, next, err
				}
				return progress, out, cur, nil
			}
			if prog == NoProgress {
				// Successful but consumed nothing: stop to avoid looping
				// forever.
				return progress, out, cur, nil
			}
			out = append(out, v)
			cur = next
			progress = MadeProgress
		}
	}
}

// OneOrMore requires at least one success, committing to MadeProgress as
// soon as the first element parses (§4.1).
func OneOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(s State, minIndent int) (Progress, []T, State, error) {
		prog1, first, next, err := p(s, minIndent)
		if err != nil {
			var zero []T
			return prog1, zero, next, err
		}
		restProg, rest, final, restErr := ZeroOrMore(p)(next, minIndent)
		if restErr != nil {
			return prog1.Or(restProg), nil, final, restErr
		}
		out := append([]T{first}, rest...)
		return prog1.Or(restProg), out, final, nil
	}
}

// SepBy1 parses one or more occurrences of elem separated by sep,
// requiring the first element (§4.1's sep_by1).
func SepBy1[T, S any](elem Parser[T], sep Parser[S]) Parser[[]T] {
	return func(s State, minIndent int) (Progress, []T, State, error) {
		prog1, first, next, err := elem(s, minIndent)
		if err != nil {
			return prog1, nil, next, err
		}
		out := []T{first}
		cur := next
		progress := prog1
		for {
			sepProg, _, afterSep, sepErr := sep(cur, minIndent)
			if sepErr != nil {
				if sepProg == MadeProgress {
					return progress.Or(sepProg), out, afterSep, sepErr
				}
				return progress, out, cur, nil
			}
			elemProg, v, afterElem, elemErr := elem(afterSep, minIndent)
			if elemErr != nil {
				// A trailing separator with nothing after it is valid
				// only via TrailingSepBy0; plain SepBy1 treats this as
				// "no more elements" and leaves the separator unconsumed.
				return progress.Or(sepProg), out, cur, nil
			}
			out = append(out, v)
			cur = afterElem
			progress = progress.Or(sepProg).Or(elemProg)
		}
	}
}

// TrailingSepBy0 parses zero or more elem separated by sep, permitting
// (but not requiring) a trailing sep before the caller's closer runs
// (§4.1). An empty sequence yields (NoProgress, nil); it fails only when
// the first element fails after making progress, returning that error.
func TrailingSepBy0[T, S any](elem Parser[T], sep Parser[S]) Parser[[]T] {
	return func(s State, minIndent int) (Progress, []T, State, error) {
		prog, first, next, err := elem(s, minIndent)
		if err != nil {
			if prog == MadeProgress {
				return prog, nil, next, err
			}
			return NoProgress, nil, s, nil
		}
		out := []T{first}
		cur := next
		progress := prog
		for {
			sepProg, _, afterSep, sepErr := sep(cur, minIndent)
			if sepErr != nil {
				return progress, out, cur, nil
			}
			elemProg, v, afterElem, elemErr := elem(afterSep, minIndent)
			if elemErr != nil {
				// Trailing separator with no following element: the
				// separator is consumed (permitted trailing sep) and we
				// stop.
				return progress.Or(sepProg), out, afterSep, nil
			}
			out = append(out, v)
			cur = afterElem
			progress = progress.Or(sepProg).Or(elemProg)
		}
	}
}

// CollectionOptions configures CollectionTrailingSep.
type CollectionOptions[T, S any] struct {
	Open    Parser[struct{}]
	Elem    Parser[T]
	Sep     Parser[S]
	Close   Parser[struct{}]
	MinIndent func(outerMinIndent int) int
}

// CollectionTrailingSep implements §4.1's collection_trailing_sep:
// opener, elements separated by sep with an optional trailing separator,
// then closer. Interior whitespace is the caller's Elem/Sep's concern
// (each already threads ConsumeSpaces); this combinator only sequences
// the three parts.
func CollectionTrailingSep[T, S any](opts CollectionOptions[T, S]) Parser[[]T] {
	return func(s State, minIndent int) (Progress, []T, State, error) {
		innerMinIndent := minIndent
		if opts.MinIndent != nil {
			innerMinIndent = opts.MinIndent(minIndent)
		}
		prog1, _, next, err := opts.Open(s, minIndent)
		if err != nil {
			return prog1, nil, next, err
		}
		prog2, items, next2, err2 := TrailingSepBy0(opts.Elem, opts.Sep)(next, innerMinIndent)
		if err2 != nil {
			return prog1.Or(prog2), nil, next2, err2
		}
		prog3, _, next3, err3 := opts.Close(next2, minIndent)
		if err3 != nil {
			return prog1.Or(prog2).Or(prog3), nil, next3, err3
		}
		return prog1.Or(prog2).Or(prog3), items, next3, nil
	}
}

// Specialize widens an inner parser's error into kind at the point it
// committed, preserving position (§4.1's specialize/specialize_ref).
func Specialize[T any](kind string, p Parser[T]) Parser[T] {
	return func(s State, minIndent int) (Progress, T, State, error) {
		prog, v, next, err := p(s, minIndent)
		if err != nil {
			return prog, v, next, specialize(kind, s.Pos(), err)
		}
		return prog, v, next, nil
	}
}

// Succeed always succeeds with v and consumes nothing.
func Succeed[T any](v T) Parser[T] {
	return func(s State, minIndent int) (Progress, T, State, error) {
		return NoProgress, v, s, nil
	}
}

// Fail always fails with err and consumes nothing.
func Fail[T any](err error) Parser[T] {
	return func(s State, minIndent int) (Progress, T, State, error) {
		var zero T
		return NoProgress, zero, s, err
	}
}

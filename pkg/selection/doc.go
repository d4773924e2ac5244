// Package selection implements a single-select value that is either owned by
// the component (uncontrolled) or driven by a value supplied by its host
// (controlled).
//
// An [Engine] starts from an initial value, a controlling value or the
// default of its [Domain], in that order. Whenever the host hands it a
// different controlling value or domain, the engine reconciles: a controlling
// value that is a member of the domain is adopted and the engine becomes
// [Controlled]; anything else is ignored and the engine stays (or becomes)
// [Uncontrolled].
//
// [Engine.Select] only writes the value while uncontrolled, but always
// notifies the host with the next and previous value. A controlled host is
// expected to answer the notification by supplying a new controlling value.
//
//	sizes, _ := selection.NewOptionSet([]selection.Option[int]{
//	    {Value: 10, DisplayValue: "10"},
//	    {Value: 25, DisplayValue: "25"},
//	}, nil)
//	e, _ := selection.New(selection.Config[int]{
//	    Domain:   sizes,
//	    OnSelect: func(next, prev int) { /* ... */ },
//	})
//	e.Select(25)
package selection

// Package pagination computes page counts, the window of page numbers shown
// around the current page, and the buttons of a pagination control.
//
// The free functions ([PageCount], [AdjacentWindow], [Buttons]) are pure.
// [Paginator] composes them with two [selection.Engine] values, one for the
// page number and one for the page size, so that either can be owned by the
// control or driven by its host.
package pagination

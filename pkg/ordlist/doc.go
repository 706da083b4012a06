// Package ordlist implements ordered lists in the style of Dietz and
// Sleator: linked sequences whose items carry integer tags such that
// the relative position of any two items can be compared in O(1).
//
// Two variants are provided:
//
//   - [List] is the single-level structure. Insertion between two
//     items with adjacent tags triggers a relabel pass that
//     redistributes tags over a geometrically grown window, giving
//     O(log N) amortized insertion.
//   - [TwoLevel] is the list-of-sublists refinement. Items carry an
//     inner tag within a bounded sublist, and sublists carry their
//     own tags in an outer [List]. Splitting a full sublist
//     renumbers at most log2(M) items, giving O(1) amortized
//     insertion.
//
// Items are addressed by [Handle] values: stable arena indices that
// survive relabels (tags change, handles do not). This matters to
// the AHRSZ algorithm, which stores a handle per vertex for the
// lifetime of the graph.
//
// Both variants may be instantiated with a zero-sized element type
// when only the ordering structure is of interest; [Space] and
// [TwoLevelSpace] package that up as pure priority spaces.
//
// References:
//
//	P. F. Dietz and D. D. Sleator. Two algorithms for maintaining
//	order in a list. STOC'87.
//
//	M. A. Bender, R. Cole, E. D. Demaine, M. Farach-Colton and
//	J. Zito. Two simplified algorithms for maintaining order in a
//	list. ESA'02.
package ordlist

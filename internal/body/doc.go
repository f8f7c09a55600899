// Package body holds the simulated bodies and the ordered collection that owns
// them.
//
// The collision pass needs to mutate two bodies of the same collection at
// once. [Set.Pair] hands out two pointers for distinct indices and refuses
// equal ones, so a body is never resolved against itself:
//
//	a, b, err := set.Pair(i, j)
//	if err != nil {
//	    return err
//	}
//	physics.Resolve(a, b, resp)
//
// Removal compacts the collection and renumbers the survivors so that a
// body's ID keeps matching its index, which the spatial grid relies on.
package body

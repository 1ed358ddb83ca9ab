// Package observed provides a decorator that intercepts every mutating operation of a
// container and routes it through a pluggable Handler.
//
// The Handler sees each modification twice: once before it happens (and may veto it)
// and once after it has been committed to the wrapped container (with the outcome).
// Iteration is covered as well: removing through the iterator returned by
// Collection.Iterator goes through the same hooks as calling Collection.Remove.
//
// Key types:
//   - Container: the collaborator contract a wrapped container has to satisfy
//   - Handler: the pre/post hook contract, BaseHandler allows everything
//   - Registry: resolution strategies that turn an arbitrary listener value into a Handler
//   - Collection: the observed container itself
//   - StandardHandler: the default Handler that fans out to PreListener and PostListener values
//
// Common usage pattern:
//
//	coll, err := observed.WrapWith[int](
//		containers.NewSet[int](),
//		observed.PreListenerFunc[int](func(ev observed.ModificationEvent[int]) error {
//			if ev.Type == observed.EventTypeClear {
//				return observed.ErrVetoed
//			}
//			return nil
//		}),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	changed, err := coll.Add(42)
//
// The decorator adds no locking. Sharing a Collection between goroutines is exactly as
// safe as sharing the wrapped container.
package observed

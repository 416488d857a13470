// Package querysync keeps typed state in step with a page URL's query string.
//
// A Provider owns one deferred-update buffer for everything bound beneath it.
// Each call site binds a querycodec.Mapping to the provider and gets back a
// Binding with three operations:
//
//	p := querysync.NewProvider(loc)
//	defer p.Close()
//
//	b := p.Bind(mapping)
//	values, err := b.Values()
//	b.Update(querysync.Update{"q": querycodec.Str("shoes")})
//	b.Reset()
//
// Writes to fields of a deferred kind are staged in the buffer and committed
// together once no new deferred write has arrived for the debounce window
// (600ms by default). Every other write, and any write issued with
// Immediate(), lands in the URL as part of the same Update call. Each Update
// produces at most one shallow navigation.
package querysync

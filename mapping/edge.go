// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping

// Edge is one incoming projection edge: a pre-synaptic slice feeding a
// post-synaptic slice, and the routing key that identifies the pre slice's spikes.
type Edge struct {
	// Projection names the projection the edge belongs to.
	Projection string

	Pre  Slice
	Post Slice
	Key  RoutingKey
}

// EdgeSource lists the edges ending at a post-synaptic slice.
type EdgeSource interface {
	IncomingEdges(post Slice) []Edge
}

// EdgeList is a static EdgeSource.
type EdgeList []Edge

// IncomingEdges returns the edges whose Post slice equals post.
func (el EdgeList) IncomingEdges(post Slice) []Edge {
	var out []Edge
	for _, e := range el {
		if e.Post == post {
			out = append(out, e)
		}
	}
	return out
}

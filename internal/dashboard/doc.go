// Package dashboard keeps the widget state of the load balancer dashboard:
// summary counters, one card per backend and the request-flow diagram.
//
// The renderer reconciles cards against each snapshot. When the set of
// backends changes the card collection is rebuilt in snapshot order;
// otherwise existing cards are patched in place so their identity (and any
// transition state a view attaches to them) survives steady-state polls.
// The flow diagram is cheap and rebuilt every cycle.
//
// After each render the winner's position is published through a Publisher,
// a single-slot channel read by the view's pulse animation.
package dashboard

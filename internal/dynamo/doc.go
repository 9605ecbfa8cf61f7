// Package dynamo is the mass-spring engine shared by every soft body.
//
// A [Body] owns flat arrays of [Node] and [Spring] values that refer to each
// other by index. Per-variant behavior is injected as strategies:
//
//   - [Integrator]: advances node kinematics by one fixed step
//   - [ElasticModel]: spring elastic force (linear or tetra-volume weighted)
//   - [Collider]: box collision response
//   - [ContactVolume]: player volume adding supplemental mass
//   - [VertexMapper]: projects node positions onto render vertices
//
// # Example
//
//	body, err := dynamo.New(nodes, springs, params, integrators.New,
//		dynamo.WithName("flag"),
//		dynamo.WithFrame(frame),
//	)
//	for body.Step() {
//		upload(body.Vertices())
//	}
//
// # Thread Safety
//
// A Body is NOT safe for concurrent use. Distinct bodies share no state and
// can be advanced in parallel with [StepAll].
package dynamo

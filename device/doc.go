// Package device provides the controller layer of the microscopy/annealing
// rig: stage, focus, illumination, and camera abstractions, with concrete
// variants speaking either the shared Temika instrument channel or a
// vendor-native serial port.
//
// Controllers own no network resource; the shared-protocol variants hold a
// reference to one injected temika.Conn and translate domain operations into
// command fragments and instrument replies back into typed values. Per-axis
// scale and origin-offset correction is encapsulated here, not in the session.
//
// Controller errors are fail-soft where the original rig demands it: a status
// reply missing its scalar marker degrades to 0.0 with a logged error rather
// than aborting a multi-hour unattended run. Configuration errors fail loudly:
// the factory returns a typed error for an unrecognized controller type.
package device

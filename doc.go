// Package simpleserde converts typed records to and from simple values,
// meaning representations built only from maps, slices, strings, numbers,
// booleans and nil, and moves them between memory and JSON or YAML files.
//
// The central type is Converter, a pair of Encoder and Decoder components
// working between a Record type and its Simple counterpart. Use New to
// supply both sides explicitly, or NewStruct to get a reflection-based
// encoder that flattens a struct into a Map following its json tags.
//
// Subpackages extend the core: `yaml` registers the YAML codec, `proto`
// builds converters for Protobuf messages, `otelserde` adds OpenTelemetry
// instrumentation and `serdetest` ships a reusable conformance suite.
package simpleserde

// Package process describes the fabrication process nodes the generator
// targets.
//
// Each node has one configuration document (TOML) carrying its physical
// constants, its device library, the six device-name sets used for
// classification, its filler/separator table and the constants used when
// emitting wiring, labels and substrate geometry. Documents for T28 and T180
// are embedded in the binary; a directory of overrides can be supplied with
// [NewLoader].
//
// Documents are loaded lazily, once per node, and never change afterwards:
//
//	cfg, err := process.Load(process.T180)
//	if err != nil {
//	    return err // names the offending file
//	}
//	c := process.NewClassifier(cfg)
//	c.IsDigitalIO("PDDW0412SCDG") // true
package process

package expcfg

// Package expcfg provides:
//
// - A declarative type schema for experiment configuration documents
//   (scalars, homogeneous lists, two-alternative unions)
// - Parsers for the bracket-nested section grammar shared by schema and
//   instance documents
// - A validator that coerces raw instance values against resolved types and
//   resolves polymorphic model-parameter sections through a registry lookup
// - A stable error model via Issues (section path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put the shared document
//   scanner under internal/.
// - Place grid-parameter parsing under gridparam/ and the CLI under
//   cmd/expcfg.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	sch, err := expcfg.ParseSchema(schemaText)
//	doc, err := expcfg.ParseDocument(instanceText)
//	cfg, iss := expcfg.Validate(sch, doc)
//	if cfg == nil {
//		// iss holds every problem found in the document
//	}

// Package hcl decodes comparison scenario files.
//
// A scenario file holds up to one block per comparable category:
//
//	queue {
//	  sample {
//	    step  = 1000000
//	    count = 10
//	  }
//	  message_per_batch = 10
//	  size_of_message   = 10
//	}
//
// The sample block is optional in every category; the caller's default
// sweep is used when it is absent.
package hcl

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"cloud-fee/core/compare"
	"cloud-fee/core/fees"
	apperrors "cloud-fee/internal/errors"
)

// Scenario is a decoded scenario file. Categories not present in the file
// are nil.
type Scenario struct {
	Queue      *compare.QueueFactors
	Serverless *compare.ServerlessFactors
	Storage    *compare.StorageFactors
}

// Categories lists the categories present, in display order
func (s *Scenario) Categories() []fees.Category {
	var out []fees.Category
	if s.Queue != nil {
		out = append(out, fees.CategoryQueue)
	}
	if s.Serverless != nil {
		out = append(out, fees.CategoryServerless)
	}
	if s.Storage != nil {
		out = append(out, fees.CategoryStorage)
	}
	return out
}

type fileSchema struct {
	Queue      *queueBlock      `hcl:"queue,block"`
	Serverless *serverlessBlock `hcl:"serverless,block"`
	Storage    *storageBlock    `hcl:"storage,block"`
}

type sampleBlock struct {
	Step  float64 `hcl:"step"`
	Count int     `hcl:"count"`
}

type queueBlock struct {
	Sample          *sampleBlock `hcl:"sample,block"`
	MessagePerBatch *float64     `hcl:"message_per_batch,optional"`
	SizeOfMessage   float64      `hcl:"size_of_message"`
}

type serverlessBlock struct {
	Sample                *sampleBlock `hcl:"sample,block"`
	ElapsedTimePerRequest float64      `hcl:"elapsed_time_per_request"`
	ResponseBodySize      float64      `hcl:"response_body_size,optional"`
	MemorySize            float64      `hcl:"memory_size,optional"`
}

type storageBlock struct {
	Sample           *sampleBlock `hcl:"sample,block"`
	ClassAOperations float64      `hcl:"class_a_operations,optional"`
	ClassBOperations float64      `hcl:"class_b_operations,optional"`
	EgressUsage      float64      `hcl:"egress_usage,optional"`
}

// Parser decodes scenario files
type Parser struct {
	// defaults is the sweep used by blocks without a sample block
	defaults compare.SampleFactor
}

// NewParser creates a new scenario parser
func NewParser(defaults compare.SampleFactor) *Parser {
	return &Parser{
		defaults: defaults,
	}
}

// LoadFile reads and decodes a scenario file
func (p *Parser) LoadFile(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.TypeInput, err, "failed to read scenario file %s", path)
	}
	return p.Parse(src, path)
}

// Parse decodes scenario source. filename is used in error messages only.
func (p *Parser) Parse(src []byte, filename string) (*Scenario, error) {
	// hclparse caches files by name, so each call gets its own parser
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	var schema fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &schema); diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	scenario := &Scenario{}

	if q := schema.Queue; q != nil {
		perBatch := 1.0
		if q.MessagePerBatch != nil {
			perBatch = *q.MessagePerBatch
		}
		scenario.Queue = &compare.QueueFactors{
			Sample:          q.Sample.factor(p.defaults),
			MessagePerBatch: perBatch,
			SizeOfMessage:   q.SizeOfMessage,
		}
	}

	if s := schema.Serverless; s != nil {
		scenario.Serverless = &compare.ServerlessFactors{
			Sample:                s.Sample.factor(p.defaults),
			ElapsedTimePerRequest: s.ElapsedTimePerRequest,
			ResponseBodySize:      s.ResponseBodySize,
			MemorySize:            s.MemorySize,
		}
	}

	if s := schema.Storage; s != nil {
		scenario.Storage = &compare.StorageFactors{
			Sample:           s.Sample.factor(p.defaults),
			ClassAOperations: s.ClassAOperations,
			ClassBOperations: s.ClassBOperations,
			EgressUsage:      s.EgressUsage,
		}
	}

	if len(scenario.Categories()) == 0 {
		return nil, apperrors.Newf(apperrors.TypeParsing, "%s: no queue, serverless or storage block", filename)
	}
	return scenario, nil
}

func (b *sampleBlock) factor(defaults compare.SampleFactor) compare.SampleFactor {
	if b == nil {
		return defaults
	}
	return compare.SampleFactor{Step: b.Step, Count: b.Count}
}

// diagnosticsError flattens error diagnostics into one parsing error that
// names the line of the first problem
func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	var messages []string
	line := 0
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		if diag.Subject != nil {
			if line == 0 {
				line = diag.Subject.Start.Line
			}
			messages = append(messages, fmt.Sprintf("line %d: %s: %s", diag.Subject.Start.Line, diag.Summary, diag.Detail))
			continue
		}
		messages = append(messages, diag.Summary+": "+diag.Detail)
	}

	return apperrors.Parsing("invalid scenario file "+filename, diags).
		WithContext("line", line).
		WithContext("diagnostics", messages)
}

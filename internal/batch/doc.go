// Package batch turns matched field assignments into external instruction
// payloads.
//
// Invoking the metadata tool once per file pays a fixed process startup cost
// that dominates runtime at scale, so tasks are consolidated into argfile
// payloads sized by task count and rendered byte length. Sharding
// distributes tasks round-robin across N payload lanes so the execution
// engine can run them concurrently; order within a shard is preserved so
// results can be correlated positionally when structured output is
// unavailable.
package batch

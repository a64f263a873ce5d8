// Package randtest generates reproducible random payloads for the round-trip
// tests in this module (large-buffer cat echoes, chunked stream transfers),
// adapted from the teacher's random package: same env-var-seed pattern so a
// failing test can be reproduced exactly, trimmed to the byte-payload
// generator this module's tests actually need.
package randtest

import (
	"math/rand"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	once sync.Once
	rng  *rand.Rand
)

// seeded lazily seeds the generator, from GO_SUBPROCESS_RANDOM_SEED if set,
// otherwise from the current time — mirroring the teacher's
// CODECRAFTERS_RANDOM_SEED convention under this module's own name.
func seeded() *rand.Rand {
	once.Do(func() {
		var source rand.Source
		if seed := os.Getenv("GO_SUBPROCESS_RANDOM_SEED"); seed != "" {
			seedInt, err := strconv.ParseInt(seed, 10, 64)
			if err != nil {
				panic(err)
			}
			source = rand.NewSource(seedInt)
		} else {
			source = rand.NewSource(time.Now().UnixNano())
		}
		rng = rand.New(source)
	})
	return rng
}

// Bytes returns n pseudo-random bytes, restricted to printable ASCII so
// tests can log a failing payload without binary-garbling a terminal.
func Bytes(n int) []byte {
	r := seeded()
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.Intn(95) + 32) // ' ' (0x20) through '~' (0x7e)
	}
	return buf
}

// Lines returns count newline-terminated random lines of roughly
// lineLength bytes each, concatenated into one buffer — used by the
// streaming/large-output test scenarios.
func Lines(count, lineLength int) []byte {
	r := seeded()
	out := make([]byte, 0, count*(lineLength+1))
	for i := 0; i < count; i++ {
		line := make([]byte, lineLength)
		for j := range line {
			line[j] = byte(r.Intn(26) + 'a')
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

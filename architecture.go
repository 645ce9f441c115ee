// Copyright 2025 The zb Authors
// SPDX-License-Identifier: MIT

package binmeta

import "zb.256lights.llc/binmeta/internal/macho"

// Architecture is the name of a CPU architecture that a binary supports.
type Architecture string

// Known architectures.
const (
	ArchX86_64   Architecture = "x86_64"
	ArchI386     Architecture = "i386"
	ArchARMv7    Architecture = "armv7"
	ArchARMv7s   Architecture = "armv7s"
	ArchARMv7k   Architecture = "armv7k"
	ArchARM64    Architecture = "arm64"
	ArchARM64e   Architecture = "arm64e"
	ArchARM64_32 Architecture = "arm64_32"
)

type cpuKey struct {
	cpu     macho.CPUType
	subtype uint32
}

var architectures = map[cpuKey]Architecture{
	{macho.CPUTypeX86_64, macho.CPUSubtypeX86_64All}: ArchX86_64,
	{macho.CPUTypeX86_64, macho.CPUSubtypeX86_64H}:   ArchX86_64,
	{macho.CPUTypeI386, macho.CPUSubtypeX86All}:      ArchI386,

	{macho.CPUTypeARM, macho.CPUSubtypeARMV7}:  ArchARMv7,
	{macho.CPUTypeARM, macho.CPUSubtypeARMV7S}: ArchARMv7s,
	{macho.CPUTypeARM, macho.CPUSubtypeARMV7K}: ArchARMv7k,

	{macho.CPUTypeARM64, macho.CPUSubtypeARM64All}: ArchARM64,
	{macho.CPUTypeARM64, macho.CPUSubtypeARM64V8}:  ArchARM64,
	{macho.CPUTypeARM64, macho.CPUSubtypeARM64E}:   ArchARM64e,

	{macho.CPUTypeARM64_32, macho.CPUSubtypeARM64All}:   ArchARM64_32,
	{macho.CPUTypeARM64_32, macho.CPUSubtypeARM64_32V8}: ArchARM64_32,
}

// ResolveArchitecture returns the architecture
// identified by a Mach-O CPU type and subtype pair.
// The capability bits in the high byte of cpuSubtype are ignored.
// ok is false if the pair does not name a known architecture.
func ResolveArchitecture(cpuType, cpuSubtype uint32) (_ Architecture, ok bool) {
	arch, ok := architectures[cpuKey{
		cpu:     macho.CPUType(cpuType),
		subtype: macho.MaskCPUSubtype(cpuSubtype),
	}]
	return arch, ok
}

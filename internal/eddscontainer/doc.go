// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/edds

// Package eddscontainer writes the optional Enfusion-style EDDS
// container: a DDS header followed by a block table and LZ4-compressed
// (or COPY, for small/incompressible) mipmap bodies. It is selected with
// the -edds flag; the default container is the plain DDS file written
// by ddsformat.
package eddscontainer

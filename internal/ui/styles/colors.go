// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the shared color palette for TUI components.
// Adaptive colors keep the interface readable on light and dark
// terminals.
package styles

import "github.com/charmbracelet/lipgloss"

// Purple - Primary accent, panel borders
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Headers, file names, key information
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Green - Added lines, success states
var Green = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// Red - Removed lines, error states
var Red = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// Yellow - Modified entries, warnings
var Yellow = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// Text - Primary text
var Text = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextMuted - Hints, counts, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// Package ecolocator resolves free-text place names into recycling drop-off
// points for the "Botellas de Amor" and "Ecoladrillos" donation program.
// Known places are answered from a curated local directory; unknown places
// fall through to a grounded external search whose answers are screened
// for fabricated results before they reach the user.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, sqlite/, prometheus/).
package ecolocator

package ecolocator

import (
	"fmt"
	"strings"
)

// Reminder is appended to every local answer.
const Reminder = "Recordatorio: asegúrate de que los plásticos estén limpios, secos y bien compactados."

// DefaultMessage is shown whenever no verified drop-off point is available.
// It never names a specific address.
const DefaultMessage = `No encontramos un punto de acopio verificado para esta ubicación.

Te sugerimos:
1. Contactar a la municipalidad o alcaldía local y consultar por programas de reciclaje de Botellas de Amor o Ecoladrillos.
2. Buscar "Botellas de Amor" o "Ecoladrillos" junto al nombre de tu ciudad en un buscador de mapas.
3. Preguntar en grupos comunitarios y redes sociales de tu barrio por puntos de entrega activos.

` + Reminder

// FormatEntry renders a directory entry as an enumerated list of its
// drop-off points in stored order, followed by the standing reminder.
// Details and phone lines are written only when present.
func FormatEntry(entry *DirectoryEntry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Puntos de entrega en %s\n", entry.Zone)
	for i, p := range entry.Points {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&sb, "   Dirección: %s\n", p.Address)
		if p.Details != "" {
			fmt.Fprintf(&sb, "   Detalles: %s\n", p.Details)
		}
		if p.Phone != "" {
			fmt.Fprintf(&sb, "   Teléfono: %s\n", p.Phone)
		}
	}
	sb.WriteString("\n")
	sb.WriteString(Reminder)
	return sb.String()
}

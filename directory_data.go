package ecolocator

// DefaultEntries returns the built-in directory in declaration order.
// Order matters: a lookup returns the first entry that matches, so more
// specific places come before the broad "ciudad de buenos aires" entry.
func DefaultEntries() []DirectoryEntry {
	return []DirectoryEntry{
		{
			City: "vicente lopez",
			Zone: "Vicente López, Zona Norte GBA",
			Points: []DropOffPoint{
				{
					Name:    "Club CAOSA",
					Address: "Ricardo Gutiérrez 1345, Olivos",
					Details: "Recepción en portería, lunes a viernes de 9 a 18 h.",
				},
				{
					Name:    "Fundación Regenerar",
					Address: "José Ingenieros 4911, Munro",
					Details: "Recibe ecoladrillos y botellas de amor. Coordinar entregas grandes por teléfono.",
				},
				{
					Name:    "Plaza Toto González",
					Address: "Urquiza 2440, Olivos",
					Details: "Punto verde del municipio, sábados de 10 a 13 h.",
				},
			},
		},
		{
			City: "san isidro",
			Zone: "San Isidro, Zona Norte GBA",
			Points: []DropOffPoint{
				{
					Name:    "Punto Verde San Isidro",
					Address: "Av. Centenario 77, San Isidro",
					Details: "Contenedor diferenciado para botellas de amor.",
				},
			},
		},
		{
			City: "tigre",
			Zone: "Tigre, Zona Norte GBA",
			Points: []DropOffPoint{
				{
					Name:    "Punto Limpio Tigre Centro",
					Address: "Av. Cazón 1514, Tigre",
					Details: "Recepción de reciclables secos, martes a domingo.",
				},
				{
					Name:    "Eco Punto Benavídez",
					Address: "Av. Agustín M. García 2450, Benavídez",
				},
			},
		},
		{
			City: "san fernando",
			Zone: "San Fernando, Zona Norte GBA",
			Points: []DropOffPoint{
				{
					Name:    "Ecopunto San Fernando",
					Address: "Av. del Libertador 1200, San Fernando",
				},
			},
		},
		{
			City: "ciudad de buenos aires",
			Zone: "Ciudad Autónoma de Buenos Aires",
			Points: []DropOffPoint{
				{
					Name:    "Punto Verde Plaza Houssay",
					Address: "Av. Córdoba 2100, CABA",
					Details: "Consultar horarios de los Puntos Verdes de la Ciudad.",
					Phone:   "147",
				},
			},
		},
	}
}

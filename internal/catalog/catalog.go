// Package catalog defines the bookable universe of the albergue: room
// types, hall/service types and dining categories, and the expansion of
// each type into individually addressable units. The catalog is static
// configuration data, fixed at process start and never mutated.
package catalog

import "fmt"

// Kind distinguishes accommodation from halls/services. It is resolved
// once here so nothing downstream needs membership tests against parallel
// lists.
type Kind string

const (
	KindRoom    Kind = "room"
	KindService Kind = "service"
)

// PriceUnit says how an item type's price is applied.
type PriceUnit string

const (
	PerDay  PriceUnit = "per_day"
	PerHour PriceUnit = "per_hour"
	OneTime PriceUnit = "one_time"
)

// ItemType is a category of bookable unit with shared capacity and price.
// Price is in euros.
type ItemType struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Kind           Kind      `json:"kind"`
	Capacity       int       `json:"capacity"`
	AvailableUnits int       `json:"availableUnits"`
	Price          float64   `json:"price,omitempty"`
	PriceUnit      PriceUnit `json:"priceUnit,omitempty"`
}

// Unit is one physical, individually bookable instance of an item type.
type Unit struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// RoomTypes lists the accommodation categories.
var RoomTypes = []ItemType{
	{ID: "quad", Name: "Habitación Cuádruple", Description: "Ideal para pequeños grupos y amigos. Capacidad para 4 personas.", Kind: KindRoom, Capacity: 4, AvailableUnits: 6, Price: 80, PriceUnit: PerDay},
	{ID: "double", Name: "Habitación Doble", Description: "Perfecta para parejas o compañeros. Capacidad para 2 personas.", Kind: KindRoom, Capacity: 2, AvailableUnits: 4, Price: 60, PriceUnit: PerDay},
	{ID: "single", Name: "Habitación Individual", Description: "Privacidad y confort para viajeros solos. Capacidad para 1 persona.", Kind: KindRoom, Capacity: 1, AvailableUnits: 30, Price: 40, PriceUnit: PerDay},
	{ID: "bunk", Name: "Habitación con 2 Literas", Description: "Una opción divertida y económica. Capacidad para 4 personas.", Kind: KindRoom, Capacity: 4, AvailableUnits: 8, Price: 70, PriceUnit: PerDay},
	{ID: "triple", Name: "Habitación Triple", Description: "Espacio extra para grupos de tres. Capacidad para 3 personas.", Kind: KindRoom, Capacity: 3, AvailableUnits: 2, Price: 75, PriceUnit: PerDay},
	{ID: "special", Name: "Habitación Especial", Description: "Perfecta para parejas. Capacidad para 2 personas.", Kind: KindRoom, Capacity: 2, AvailableUnits: 2, Price: 85, PriceUnit: PerDay},
}

// ServiceTypes lists the meeting halls and per-unit services.
var ServiceTypes = []ItemType{
	{ID: "small_hall", Name: "SALA PEQUEÑA", Description: "Espacio acogedor para reuniones de hasta 30 personas.", Kind: KindService, Capacity: 30, AvailableUnits: 3, Price: 33, PriceUnit: PerDay},
	{ID: "medium_hall", Name: "SALA MEDIANA", Description: "Perfecta para talleres y presentaciones de hasta 50 personas.", Kind: KindService, Capacity: 50, AvailableUnits: 2, Price: 55, PriceUnit: PerDay},
	{ID: "large_hall", Name: "SALA GRANDE", Description: "Ideal para eventos y conferencias de hasta 70 personas.", Kind: KindService, Capacity: 70, AvailableUnits: 1, Price: 77, PriceUnit: PerDay},
	{ID: "other_halls", Name: "OTRAS SALAS SALONES", Description: "Salones versátiles para diversas actividades, para 20 personas.", Kind: KindService, Capacity: 20, AvailableUnits: 5, Price: 22, PriceUnit: PerDay},
	{ID: "secretarial_services", Name: "FOTOCOPIAS", Description: "Servicio de fotocopias y soporte administrativo. El precio es por unidad.", Kind: KindService, Capacity: 1, AvailableUnits: 1, Price: 0.07, PriceUnit: OneTime},
}

// room is one physical room with its real door number and floor.
type room struct {
	number int
	typ    string
	floor  string
}

// rooms is the physical room inventory. Unit IDs derive from this list, so
// its order fixes the first-fit allocation order for each type.
var rooms = []room{
	// Cuádruple
	{16, "quad", "1°"}, {18, "quad", "1°"}, {20, "quad", "1°"},
	{44, "quad", "2°"}, {46, "quad", "2°"}, {48, "quad", "2°"},
	// Doble
	{21, "double", "1°"}, {22, "double", "1°"},
	{45, "double", "2°"}, {50, "double", "2°"},
	// Individual
	{1, "single", "1°"}, {2, "single", "1°"}, {3, "single", "1°"},
	{4, "single", "1°"}, {5, "single", "1°"}, {6, "single", "1°"},
	{7, "single", "1°"}, {8, "single", "1°"}, {9, "single", "1°"},
	{10, "single", "1°"}, {11, "single", "1°"}, {12, "single", "1°"},
	{13, "single", "1°"}, {14, "single", "1°"}, {15, "single", "1°"},
	{17, "single", "1°"}, {19, "single", "1°"}, {30, "single", "1°"},
	{32, "single", "1°"}, {38, "single", "1°"}, {40, "single", "1°"},
	{42, "single", "1°"},
	{29, "single", "2°"}, {31, "single", "2°"}, {33, "single", "2°"},
	{35, "single", "2°"}, {37, "single", "2°"}, {39, "single", "2°"},
	{41, "single", "2°"}, {43, "single", "2°"},
	// Con 2 Literas
	{23, "bunk", "1°"}, {25, "bunk", "1°"}, {27, "bunk", "1°"}, {28, "bunk", "1°"},
	{47, "bunk", "2°"}, {49, "bunk", "2°"}, {51, "bunk", "2°"}, {53, "bunk", "2°"},
	// Triple
	{24, "triple", "1°"}, {52, "triple", "2°"},
	// Especial
	{26, "special", "1°"}, {54, "special", "2°"},
}

var (
	itemTypes []ItemType
	byID      map[string]ItemType
	units     []Unit
	unitsByTy map[string][]Unit
)

func init() {
	itemTypes = make([]ItemType, 0, len(RoomTypes)+len(ServiceTypes))
	itemTypes = append(itemTypes, RoomTypes...)
	itemTypes = append(itemTypes, ServiceTypes...)

	byID = make(map[string]ItemType, len(itemTypes))
	for _, it := range itemTypes {
		byID[it.ID] = it
	}

	// Room units carry their real door numbers: quad_16, double_21, ...
	for _, r := range rooms {
		units = append(units, Unit{
			ID:   fmt.Sprintf("%s_%d", r.typ, r.number),
			Type: r.typ,
			Name: fmt.Sprintf("%s %d (%s)", byID[r.typ].Name, r.number, r.floor),
		})
	}

	// Service units are numbered sequentially: small_hall_1, small_hall_2, ...
	for _, st := range ServiceTypes {
		for i := 1; i <= st.AvailableUnits; i++ {
			units = append(units, Unit{
				ID:   fmt.Sprintf("%s_%d", st.ID, i),
				Type: st.ID,
				Name: fmt.Sprintf("%s %d", st.Name, i),
			})
		}
	}

	unitsByTy = make(map[string][]Unit)
	for _, u := range units {
		unitsByTy[u.Type] = append(unitsByTy[u.Type], u)
	}
}

// ItemTypes returns every bookable item type, rooms first.
func ItemTypes() []ItemType {
	return itemTypes
}

// Lookup resolves an item type by ID.
func Lookup(id string) (ItemType, bool) {
	it, ok := byID[id]
	return it, ok
}

// Units returns every individual unit in catalog iteration order.
func Units() []Unit {
	return units
}

// UnitsOf returns the individual units of one item type, in the fixed
// order first-fit allocation walks them.
func UnitsOf(typeID string) []Unit {
	return unitsByTy[typeID]
}

// TotalRoomUnits returns the number of physical rooms (halls excluded),
// the denominator for the occupancy rate.
func TotalRoomUnits() int {
	return len(rooms)
}

package domain

// BusRoute holds the meeting information for one bus route. Coordinator fields
// may be empty when nobody has been assigned yet.
type BusRoute struct {
	ID               string `json:"id"`
	CoordinatorName  string `json:"coordinator_name,omitempty"`
	CoordinatorEmail string `json:"coordinator_email,omitempty"`
	Meeting          string `json:"meeting"`
	Location         string `json:"location"`
}

func (r BusRoute) HasCoordinator() bool {
	return r.CoordinatorName != "" || r.CoordinatorEmail != ""
}

// BusRouteTable is an immutable lookup built once at startup.
type BusRouteTable struct {
	routes map[string]BusRoute
}

func NewBusRouteTable(routes []BusRoute) BusRouteTable {
	m := make(map[string]BusRoute, len(routes))
	for _, r := range routes {
		m[r.ID] = r
	}
	return BusRouteTable{routes: m}
}

// Lookup returns the route for id. A missing route is not an error.
func (t BusRouteTable) Lookup(id string) (BusRoute, bool) {
	r, ok := t.routes[id]
	return r, ok
}

func (t BusRouteTable) Len() int {
	return len(t.routes)
}

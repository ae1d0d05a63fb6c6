package backend

// Endpoint paths, relative to the origin.
const (
	SetupPath      = "/api/ssh-key/setup"
	DeviceListPath = "/api/pclist"
	RegisterPath   = "/api/regist"
)

// StatusGenerated is the setup status reported when the backend had no key
// and created one for this request.
const StatusGenerated = "generated"

// SetupResponse is the body of GET /api/ssh-key/setup.
type SetupResponse struct {
	Status    string `json:"status"`
	PublicKey string `json:"public_key,omitempty"`
}

// Generated reports whether the key was created by this request.
func (r SetupResponse) Generated() bool {
	return r.Status == StatusGenerated
}

// Device is a registered log-collection target.
type Device struct {
	Address     string `json:"prism_ip"`
	Name        string `json:"name,omitempty"`
	ClusterUUID string `json:"cluster_uuid,omitempty"`
}

// DisplayName returns Name, falling back to Address.
func (d Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Address
}

type deviceList struct {
	Devices []Device `json:"pc_list"`
}

// Registration is the body of POST /api/regist.
type Registration struct {
	Address  string `json:"prism_ip"`
	Username string `json:"prism_user"`
	Password string `json:"prism_pass"`
}

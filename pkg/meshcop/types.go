package meshcop

import "fmt"

// TLVType is a MeshCoP TLV type tag.
type TLVType uint8

// MeshCoP TLV types, per the Thread specification.
const (
	TypeChannel                 TLVType = 0
	TypePanID                   TLVType = 1
	TypeExtPanID                TLVType = 2
	TypeNetworkName             TLVType = 3
	TypePSKc                    TLVType = 4
	TypeNetworkKey              TLVType = 5
	TypeNetworkKeySequence      TLVType = 6
	TypeMeshLocalPrefix         TLVType = 7
	TypeSteeringData            TLVType = 8
	TypeBorderAgentLocator      TLVType = 9
	TypeCommissionerID          TLVType = 10
	TypeCommissionerSessionID   TLVType = 11
	TypeSecurityPolicy          TLVType = 12
	TypeGet                     TLVType = 13
	TypeActiveTimestamp         TLVType = 14
	TypeCommissionerUDPPort     TLVType = 15
	TypeState                   TLVType = 16
	TypeJoinerDTLSEncapsulation TLVType = 17
	TypeJoinerUDPPort           TLVType = 18
	TypeJoinerIID               TLVType = 19
	TypeJoinerRouterLocator     TLVType = 20
	TypeJoinerRouterKEK         TLVType = 21
	TypeProvisioningURL         TLVType = 32
	TypeVendorName              TLVType = 33
	TypeVendorModel             TLVType = 34
	TypeVendorSWVersion         TLVType = 35
	TypeVendorData              TLVType = 36
	TypeVendorStackVersion      TLVType = 37
	TypeUDPEncapsulation        TLVType = 48
	TypeIPv6Address             TLVType = 49
	TypePendingTimestamp        TLVType = 51
	TypeDelayTimer              TLVType = 52
	TypeChannelMask             TLVType = 53
	TypeCount                   TLVType = 54
	TypePeriod                  TLVType = 55
	TypeScanDuration            TLVType = 56
	TypeEnergyList              TLVType = 57
	TypeDiscoveryRequest        TLVType = 128
	TypeDiscoveryResponse       TLVType = 129
	TypeJoinerAdvertisement     TLVType = 241
)

// typeNames maps every registered TLV type to its name. Membership in this
// map is also the validity check used by Parse.
var typeNames = map[TLVType]string{
	TypeChannel:                 "Channel",
	TypePanID:                   "PanID",
	TypeExtPanID:                "ExtPanID",
	TypeNetworkName:             "NetworkName",
	TypePSKc:                    "PSKc",
	TypeNetworkKey:              "NetworkKey",
	TypeNetworkKeySequence:      "NetworkKeySequence",
	TypeMeshLocalPrefix:         "MeshLocalPrefix",
	TypeSteeringData:            "SteeringData",
	TypeBorderAgentLocator:      "BorderAgentLocator",
	TypeCommissionerID:          "CommissionerID",
	TypeCommissionerSessionID:   "CommissionerSessionID",
	TypeSecurityPolicy:          "SecurityPolicy",
	TypeGet:                     "Get",
	TypeActiveTimestamp:         "ActiveTimestamp",
	TypeCommissionerUDPPort:     "CommissionerUDPPort",
	TypeState:                   "State",
	TypeJoinerDTLSEncapsulation: "JoinerDTLSEncapsulation",
	TypeJoinerUDPPort:           "JoinerUDPPort",
	TypeJoinerIID:               "JoinerIID",
	TypeJoinerRouterLocator:     "JoinerRouterLocator",
	TypeJoinerRouterKEK:         "JoinerRouterKEK",
	TypeProvisioningURL:         "ProvisioningURL",
	TypeVendorName:              "VendorName",
	TypeVendorModel:             "VendorModel",
	TypeVendorSWVersion:         "VendorSWVersion",
	TypeVendorData:              "VendorData",
	TypeVendorStackVersion:      "VendorStackVersion",
	TypeUDPEncapsulation:        "UDPEncapsulation",
	TypeIPv6Address:             "IPv6Address",
	TypePendingTimestamp:        "PendingTimestamp",
	TypeDelayTimer:              "DelayTimer",
	TypeChannelMask:             "ChannelMask",
	TypeCount:                   "Count",
	TypePeriod:                  "Period",
	TypeScanDuration:            "ScanDuration",
	TypeEnergyList:              "EnergyList",
	TypeDiscoveryRequest:        "DiscoveryRequest",
	TypeDiscoveryResponse:       "DiscoveryResponse",
	TypeJoinerAdvertisement:     "JoinerAdvertisement",
}

// Known reports whether t is a registered MeshCoP TLV type.
func (t TLVType) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// String returns the type name, or a numeric form for unregistered types.
func (t TLVType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TLVType(%d)", uint8(t))
}

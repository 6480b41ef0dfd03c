package metadata

import (
	"fmt"
	"regexp"
	"strconv"
)

// InventoryNumber is the human-readable asset tag printed on device labels,
// shaped {COMPANY_CODE}-{DEVICE_TYPE_CODE}/{SEQ}, e.g. "WWP-02/0022".
type InventoryNumber struct {
	companyCode    string
	deviceTypeCode string
	sequence       int
}

func NewInventoryNumber(companyCode, deviceTypeCode string, sequence int) InventoryNumber {
	return InventoryNumber{
		companyCode:    companyCode,
		deviceTypeCode: deviceTypeCode,
		sequence:       sequence,
	}
}

func (n InventoryNumber) String() string {
	return fmt.Sprintf("%s-%s/%04d", n.companyCode, n.deviceTypeCode, n.sequence)
}

// Pattern matches only numbers conforming to the generated shape for the
// exact company/device-type pair. Legacy numbers that do not conform are
// ignored when computing the next sequence.
func Pattern(companyCode, deviceTypeCode string) *regexp.Regexp {
	return regexp.MustCompile(
		"^" + regexp.QuoteMeta(companyCode) + "-" + regexp.QuoteMeta(deviceTypeCode) + `/(\d+)$`,
	)
}

// NextSequence scans the existing inventory numbers of a company/device-type
// pair and returns one greater than the highest conforming sequence. The scan
// is not atomic against concurrent writers; the unique index on the devices
// table is the final arbiter and a collision surfaces as a conflict.
func NextSequence(companyCode, deviceTypeCode string, existing []string) int {
	pattern := Pattern(companyCode, deviceTypeCode)

	maxSequence := 0
	for _, number := range existing {
		match := pattern.FindStringSubmatch(number)
		if match == nil {
			continue
		}
		sequence, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		if sequence > maxSequence {
			maxSequence = sequence
		}
	}

	return maxSequence + 1
}

// Generate produces a fresh inventory number for the pair.
func Generate(companyCode, deviceTypeCode string, existing []string) string {
	sequence := NextSequence(companyCode, deviceTypeCode, existing)
	return NewInventoryNumber(companyCode, deviceTypeCode, sequence).String()
}

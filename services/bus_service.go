package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

// BusInput is the create/update payload. SchoolID and DriverID are optional;
// both are re-validated against the caller's agency on every write.
type BusInput struct {
	BusNumber string `json:"bus_number" validate:"required,max=30"`
	Capacity  int    `json:"capacity" validate:"required,gt=0"`
	SchoolID  *uint  `json:"school_id"`
	DriverID  *uint  `json:"driver_id"`
}

// BusDetail is the projection returned to list/detail endpoints: the bus row
// plus the names the UI shows without extra round trips.
type BusDetail struct {
	ID          uint    `json:"id"`
	BusNumber   string  `json:"bus_number"`
	Capacity    int     `json:"capacity"`
	AgencyID    uint    `json:"agency_id"`
	SchoolID    *uint   `json:"school_id"`
	SchoolName  string  `json:"school_name,omitempty"`
	DriverID    *uint   `json:"driver_id"`
	DriverName  string  `json:"driver_name,omitempty"`
	DriverPhone string  `json:"driver_phone,omitempty"`
	HelperName  string  `json:"helper_name,omitempty"`
	HelperPhone string  `json:"helper_phone,omitempty"`
}

func findBus(db *gorm.DB, id uint) (*models.Bus, error) {
	var bus models.Bus
	err := db.First(&bus, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Bus not found")
	}
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

// resolveSchoolForBus checks the optional school link: the school must exist
// and belong to the bus's agency.
func resolveSchoolForBus(db *gorm.DB, schoolID *uint, agencyID uint) (*uint, error) {
	if schoolID == nil {
		return nil, nil
	}
	var school models.School
	err := db.First(&school, *schoolID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("School not found")
	}
	if err != nil {
		return nil, err
	}
	if school.AgencyID == nil || *school.AgencyID != agencyID {
		return nil, forbidden("School does not belong to your agency")
	}
	return &school.ID, nil
}

// resolveDriverForBus checks the optional driver link: same agency, and not
// already driving another bus. currentBusID excludes the bus being updated
// from the uniqueness check.
func resolveDriverForBus(db *gorm.DB, driverID *uint, agencyID uint, currentBusID *uint) (*uint, error) {
	if driverID == nil {
		return nil, nil
	}
	var driver models.Driver
	err := db.First(&driver, *driverID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Driver not found")
	}
	if err != nil {
		return nil, err
	}
	if driver.AgencyID != agencyID {
		return nil, forbidden("Driver does not belong to your agency")
	}
	var other models.Bus
	err = db.Where("driver_id = ?", driver.ID).First(&other).Error
	if err == nil {
		if currentBusID == nil || other.ID != *currentBusID {
			return nil, conflict("Driver already assigned to another bus")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return &driver.ID, nil
}

// CreateBus records a bus under the caller's agency. The agency is never
// taken from the payload.
func CreateBus(db *gorm.DB, caller Caller, in BusInput) (*models.Bus, error) {
	agency, err := agencyByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	in.BusNumber = strings.TrimSpace(in.BusNumber)
	if in.BusNumber == "" {
		return nil, invalid("bus_number is required")
	}
	if in.Capacity <= 0 {
		return nil, invalid("capacity must be a positive integer")
	}

	var dup models.Bus
	if err := db.Where("bus_number = ?", in.BusNumber).First(&dup).Error; err == nil {
		return nil, conflict("Bus number already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	schoolID, err := resolveSchoolForBus(db, in.SchoolID, agency.ID)
	if err != nil {
		return nil, err
	}
	driverID, err := resolveDriverForBus(db, in.DriverID, agency.ID, nil)
	if err != nil {
		return nil, err
	}

	bus := &models.Bus{
		BusNumber: in.BusNumber,
		Capacity:  in.Capacity,
		AgencyID:  agency.ID,
		SchoolID:  schoolID,
		DriverID:  driverID,
	}
	if err := db.Create(bus).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race on bus_number or driver_id
			return nil, conflict("Bus number or driver already taken")
		}
		return nil, err
	}
	return bus, nil
}

// UpdateBus re-runs every create-time validation against the stored row.
// The bus's agency is immutable; a school or driver omitted from the payload
// is unassigned.
func UpdateBus(db *gorm.DB, caller Caller, id uint, in BusInput) (*models.Bus, error) {
	agency, err := agencyByEmail(db, caller.Email)
	if err != nil {
		return nil, err
	}
	bus, err := findBus(db, id)
	if err != nil {
		return nil, err
	}
	if bus.AgencyID != agency.ID {
		return nil, forbidden("Bus does not belong to your agency")
	}

	in.BusNumber = strings.TrimSpace(in.BusNumber)
	if in.BusNumber == "" {
		return nil, invalid("bus_number is required")
	}
	if in.Capacity <= 0 {
		return nil, invalid("capacity must be a positive integer")
	}

	var dup models.Bus
	if err := db.Where("bus_number = ? AND id <> ?", in.BusNumber, bus.ID).First(&dup).Error; err == nil {
		return nil, conflict("Bus number already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	schoolID, err := resolveSchoolForBus(db, in.SchoolID, agency.ID)
	if err != nil {
		return nil, err
	}
	driverID, err := resolveDriverForBus(db, in.DriverID, agency.ID, &bus.ID)
	if err != nil {
		return nil, err
	}

	bus.BusNumber = in.BusNumber
	bus.Capacity = in.Capacity
	bus.SchoolID = schoolID
	bus.DriverID = driverID
	// map update so clearing school/driver writes NULL
	err = db.Model(bus).
		Updates(map[string]any{
			"bus_number": bus.BusNumber,
			"capacity":   bus.Capacity,
			"school_id":  bus.SchoolID,
			"driver_id":  bus.DriverID,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("Bus number or driver already taken")
		}
		return nil, err
	}
	return bus, nil
}

// DeleteBus unassigns every helper and student on the bus, clears the driver
// and school links, then removes the row. The whole cascade commits or rolls
// back as one unit.
func DeleteBus(db *gorm.DB, caller Caller, id uint) error {
	agency, err := agencyByEmail(db, caller.Email)
	if err != nil {
		return err
	}
	bus, err := findBus(db, id)
	if err != nil {
		return err
	}
	if bus.AgencyID != agency.ID {
		return forbidden("Bus does not belong to your agency")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.BusHelper{}).
			Where("assigned_bus_id = ?", bus.ID).
			Update("assigned_bus_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Student{}).
			Where("assigned_bus_id = ?", bus.ID).
			Update("assigned_bus_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Bus{}).
			Where("id = ?", bus.ID).
			Updates(map[string]any{"driver_id": nil, "school_id": nil}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bus{}, bus.ID).Error
	})
}

// AssignHelper points a helper at a bus. Several helpers may share one bus;
// there is deliberately no uniqueness check here.
func AssignHelper(db *gorm.DB, busID, helperID uint) (*models.Bus, error) {
	bus, err := findBus(db, busID)
	if err != nil {
		return nil, err
	}
	var helper models.BusHelper
	err = db.First(&helper, helperID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Helper not found")
	}
	if err != nil {
		return nil, err
	}
	if err := db.Model(&helper).Update("assigned_bus_id", bus.ID).Error; err != nil {
		return nil, err
	}
	return bus, nil
}

// UnassignDriver clears a bus's driver link.
func UnassignDriver(db *gorm.DB, busID uint) error {
	bus, err := findBus(db, busID)
	if err != nil {
		return err
	}
	if bus.DriverID == nil {
		return conflict("No driver assigned to this bus")
	}
	return db.Model(bus).Update("driver_id", nil).Error
}

func GetBus(db *gorm.DB, id uint) (*models.Bus, error) {
	return findBus(db, id)
}

func GetBusDetail(db *gorm.DB, id uint) (*BusDetail, error) {
	bus, err := findBus(db, id)
	if err != nil {
		return nil, err
	}
	d := toBusDetail(db, bus)
	return &d, nil
}

func ListBuses(db *gorm.DB) ([]models.Bus, error) {
	var buses []models.Bus
	if err := db.Order("id ASC").Find(&buses).Error; err != nil {
		return nil, err
	}
	return buses, nil
}

func BusesByAgency(db *gorm.DB, agencyID uint) ([]BusDetail, error) {
	var buses []models.Bus
	if err := db.Where("agency_id = ?", agencyID).Order("id ASC").Find(&buses).Error; err != nil {
		return nil, err
	}
	out := make([]BusDetail, 0, len(buses))
	for i := range buses {
		out = append(out, toBusDetail(db, &buses[i]))
	}
	return out, nil
}

func BusesBySchool(db *gorm.DB, schoolID uint) ([]BusDetail, error) {
	var buses []models.Bus
	if err := db.Where("school_id = ?", schoolID).Order("id ASC").Find(&buses).Error; err != nil {
		return nil, err
	}
	out := make([]BusDetail, 0, len(buses))
	for i := range buses {
		out = append(out, toBusDetail(db, &buses[i]))
	}
	return out, nil
}

// BusByDriver returns nil without error when the driver has no bus.
func BusByDriver(db *gorm.DB, driverID uint) (*models.Bus, error) {
	var bus models.Bus
	err := db.Where("driver_id = ?", driverID).First(&bus).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func toBusDetail(db *gorm.DB, bus *models.Bus) BusDetail {
	d := BusDetail{
		ID:        bus.ID,
		BusNumber: bus.BusNumber,
		Capacity:  bus.Capacity,
		AgencyID:  bus.AgencyID,
		SchoolID:  bus.SchoolID,
		DriverID:  bus.DriverID,
	}
	if bus.SchoolID != nil {
		var school models.School
		if err := db.Joins("User").First(&school, *bus.SchoolID).Error; err == nil {
			d.SchoolName = school.User.Name
		}
	}
	if bus.DriverID != nil {
		var driver models.Driver
		if err := db.Joins("User").First(&driver, *bus.DriverID).Error; err == nil {
			d.DriverName = driver.User.Name
			d.DriverPhone = driver.User.Phone
		}
	}
	var helper models.BusHelper
	if err := db.Joins("User").Where("assigned_bus_id = ?", bus.ID).Order("bus_helpers.id ASC").First(&helper).Error; err == nil {
		d.HelperName = helper.User.Name
		d.HelperPhone = helper.User.Phone
	}
	return d
}

package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"luxury-stay-backend/models"
	"luxury-stay-backend/utils"
)

func TestRoomCreate_DefaultsAndValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db, NewAvailabilityService(db))

	room := &models.Room{RoomNumber: " 101 ", Type: models.RoomTypeStandard, PricePerNight: 100}
	require.NoError(t, svc.Create(room))
	require.Equal(t, "101", room.RoomNumber)
	require.Equal(t, models.RoomAvailable, room.Status)

	err := svc.Create(&models.Room{RoomNumber: "   "})
	var validation *utils.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestRoomCreate_DuplicateNumberConflicts(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db, NewAvailabilityService(db))

	require.NoError(t, svc.Create(&models.Room{RoomNumber: "101", Type: models.RoomTypeStandard, PricePerNight: 100}))

	err := svc.Create(&models.Room{RoomNumber: "101", Type: models.RoomTypeDeluxe, PricePerNight: 180})
	var conflict *utils.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Contains(t, conflict.Message, "101")
}

func TestRoomList_ExcludesMaintenanceAndCleaning(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db, NewAvailabilityService(db))

	createRoom(t, db, "101", 100, models.RoomAvailable)
	createRoom(t, db, "102", 100, models.RoomReserved)
	createRoom(t, db, "103", 100, models.RoomMaintenance)
	createRoom(t, db, "104", 100, models.RoomCleaning)

	rooms, err := svc.List(RoomFilter{})
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, "101", rooms[0].RoomNumber)
	require.Equal(t, "102", rooms[1].RoomNumber)
}

func TestRoomList_DateFilterDropsBookedRooms(t *testing.T) {
	svc, db, _ := newTestReservationService(t)
	rooms := NewRoomService(db, NewAvailabilityService(db))

	booked := createRoom(t, db, "101", 100, models.RoomAvailable)
	createRoom(t, db, "102", 100, models.RoomAvailable)

	_, err := svc.CreatePublicBooking(publicBooking(booked.ID, "2030-06-10", "2030-06-12"))
	require.NoError(t, err)

	free, err := rooms.List(RoomFilter{CheckInDate: "2030-06-11", CheckOutDate: "2030-06-13"})
	require.NoError(t, err)
	require.Len(t, free, 1)
	require.Equal(t, "102", free[0].RoomNumber)

	// Outside the booked range both rooms show up.
	all, err := rooms.List(RoomFilter{CheckInDate: "2030-07-01", CheckOutDate: "2030-07-03"})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRoomUpdateAndDelete(t *testing.T) {
	db := openTestDB(t)
	svc := NewRoomService(db, NewAvailabilityService(db))

	room := createRoom(t, db, "101", 100, models.RoomAvailable)

	updated, err := svc.Update(room.ID, &models.Room{PricePerNight: 120, Status: models.RoomMaintenance})
	require.NoError(t, err)
	require.InDelta(t, 120.0, updated.PricePerNight, 0.001)
	require.Equal(t, models.RoomMaintenance, updated.Status)

	require.NoError(t, svc.Delete(room.ID))

	_, err = svc.ByID(room.ID)
	var notFound *utils.NotFoundError
	require.ErrorAs(t, err, &notFound)

	err = svc.Delete(9999)
	require.ErrorAs(t, err, &notFound)
}

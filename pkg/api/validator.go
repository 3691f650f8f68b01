package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	if p.UnitID == "" {
		return errors.New("unitId is required")
	}
	if p.X < 0 || p.Y < 0 {
		return errors.New("target coordinates cannot be negative")
	}
	return nil
}

func (p SpawnPayload) Validate() error {
	if p.CapitalID == "" {
		return errors.New("capitalId is required")
	}
	if p.UnitType == "" {
		return errors.New("unitType is required")
	}
	return nil
}

func (p BuildPayload) Validate() error {
	if p.BuildingType == "" {
		return errors.New("buildingType is required")
	}
	if p.X < 0 || p.Y < 0 {
		return errors.New("coordinates cannot be negative")
	}
	return nil
}

func (p UpgradePayload) Validate() error {
	if p.BuildingID == "" {
		return errors.New("buildingId is required")
	}
	return nil
}

func (p JoinRoomPayload) Validate() error {
	if len(p.Code) != 4 {
		return errors.New("room code must be exactly 4 characters")
	}
	return nil
}

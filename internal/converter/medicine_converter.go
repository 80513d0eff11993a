package converter

import (
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
)

// MedicineToResponse converts a catalog entry with its stock band.
func MedicineToResponse(medicine *entity.Medicine) dto.MedicineResponse {
	return dto.MedicineResponse{
		ID:    medicine.ID,
		Name:  medicine.Name,
		Unit:  medicine.Unit,
		Price: medicine.Price,
		Stock: medicine.Stock,
		Band:  medicine.StockBand(),
	}
}

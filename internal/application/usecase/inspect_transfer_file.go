package usecase

import (
	"fmt"

	"github.com/bibbank/sct34/internal/application/dto"
	"github.com/bibbank/sct34/internal/domain/service"
)

// InspectTransferFile checks a transfer file against its own trailer records.
type InspectTransferFile struct{}

func NewInspectTransferFile() *InspectTransferFile {
	return &InspectTransferFile{}
}

func (uc *InspectTransferFile) Execute(payload []byte) (dto.InspectTransferFileResponse, error) {
	summary, err := service.InspectFile(payload)
	if err != nil {
		return dto.InspectTransferFileResponse{}, fmt.Errorf("failed to inspect transfer file: %w", err)
	}

	resp := dto.InspectTransferFileResponse{
		Records:         make([]dto.RecordLine, 0, len(summary.Records)),
		Problems:        summary.Problems,
		Declared:        make(map[int]int64, len(summary.Declared)),
		Beneficiaries:   summary.Counted.Beneficiaries,
		TotalMinorUnits: summary.Counted.AmountMinorUnits,
		Valid:           summary.Valid(),
	}
	for _, r := range summary.Records {
		resp.Records = append(resp.Records, dto.RecordLine{
			Line:   r.Line,
			Code:   r.Type.Code(),
			Type:   r.Type.String(),
			Length: r.Length,
		})
	}
	for code, totals := range summary.Declared {
		resp.Declared[code] = totals.AmountMinorUnits
	}
	return resp, nil
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talenthub-backend/models"
)

func TestClassifyField(t *testing.T) {
	tests := []struct {
		field string
		want  models.FileCategory
	}{
		{"resume", models.CategoryResume},
		{"updated_CV", models.CategoryResume},
		{"certificate_2", models.CategoryEducationCert},
		{"degree_scan", models.CategoryEducationCert},
		{"marksheet", models.CategoryEducationCert},
		{"experience_letter", models.CategoryExperienceLtr},
		{"relieving_letter", models.CategoryRelievingLtr},
		{"payslip_march", models.CategoryPayslip},
		{"salary_slip_1", models.CategoryPayslip},
		{"bank_statement", models.CategoryBankStatement},
		{"offer_letter", models.CategoryOfferLetter},
		{"aadhaar_card", models.CategoryKYCDocument},
		{"aadhar_front", models.CategoryKYCDocument},
		{"pan_card", models.CategoryKYCDocument},
		{"PASSPORT", models.CategoryKYCDocument},
		{"kyc_doc", models.CategoryKYCDocument},
		{"profile_photo", models.CategoryPhoto},
		{"avatar", models.CategoryPhoto},
		{"service_agreement", models.CategoryAgreement},
		{"signed_nda", models.CategoryAgreement},
		{"leave_policy", models.CategoryPolicyDocument},
		{"randomField", models.CategoryOther},
		{"", models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyField(tt.field))
		})
	}
}

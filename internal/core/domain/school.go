package domain

import "fmt"

// School is a closed-set tag partitioning the document catalog. Values are
// the professional schools of the university; SchoolGeneral is the shared
// general-information bucket appended to every catalog lookup.
type School string

const (
	SchoolGeneral School = "Información General"

	SchoolAdministracion   School = "Ciencias Administrativas"
	SchoolAgronomia        School = "Agronomía"
	SchoolAgricola         School = "Ingeniería Agrícola"
	SchoolContabilidad     School = "Ciencias Contables y Financieras"
	SchoolEconomia         School = "Economía"
	SchoolIndustrial       School = "Ingeniería Industrial"
	SchoolInformatica      School = "Ingeniería Informática"
	SchoolAgroindustrial   School = "Ingeniería Agroindustrial e Industrias Alimentarias"
	SchoolMecatronica      School = "Ingeniería Mecatrónica"
	SchoolMinas            School = "Ingeniería de Minas"
	SchoolGeologica        School = "Ingeniería Geológica"
	SchoolPetroleo         School = "Ingeniería de Petróleo"
	SchoolQuimica          School = "Ingeniería Química"
	SchoolAmbiental        School = "Ingeniería Ambiental y Seguridad Industrial"
	SchoolPesquera         School = "Ingeniería Pesquera"
	SchoolZootecnia        School = "Ingeniería Zootecnia"
	SchoolVeterinaria      School = "Medicina Veterinaria"
	SchoolMedicina         School = "Medicina Humana"
	SchoolEnfermeria       School = "Enfermería"
	SchoolObstetricia      School = "Obstetricia"
	SchoolPsicologia       School = "Psicología"
	SchoolEstomatologia    School = "Estomatología"
	SchoolHistoria         School = "Historia y Geografía"
	SchoolLenguaLiteratura School = "Lengua y Literatura"
	SchoolEducacionInicial School = "Educación Inicial"
	SchoolEducacionPrim    School = "Educación Primaria"
	SchoolComunicacion     School = "Ciencias de la Comunicación Social"
	SchoolDerecho          School = "Derecho y Ciencias Políticas"
	SchoolMatematica       School = "Matemática"
	SchoolFisica           School = "Física"
	SchoolBiologia         School = "Ciencias Biológicas"
	SchoolElectronica      School = "Ingeniería Electrónica y Telecomunicaciones"
	SchoolEstadistica      School = "Estadística"
	SchoolCivil            School = "Ingeniería Civil"
	SchoolArquitectura     School = "Arquitectura y Urbanismo"
)

var knownSchools = map[School]struct{}{
	SchoolAdministracion:   {},
	SchoolAgronomia:        {},
	SchoolAgricola:         {},
	SchoolContabilidad:     {},
	SchoolEconomia:         {},
	SchoolIndustrial:       {},
	SchoolInformatica:      {},
	SchoolAgroindustrial:   {},
	SchoolMecatronica:      {},
	SchoolMinas:            {},
	SchoolGeologica:        {},
	SchoolPetroleo:         {},
	SchoolQuimica:          {},
	SchoolAmbiental:        {},
	SchoolPesquera:         {},
	SchoolZootecnia:        {},
	SchoolVeterinaria:      {},
	SchoolMedicina:         {},
	SchoolEnfermeria:       {},
	SchoolObstetricia:      {},
	SchoolPsicologia:       {},
	SchoolEstomatologia:    {},
	SchoolHistoria:         {},
	SchoolLenguaLiteratura: {},
	SchoolEducacionInicial: {},
	SchoolEducacionPrim:    {},
	SchoolComunicacion:     {},
	SchoolDerecho:          {},
	SchoolMatematica:       {},
	SchoolFisica:           {},
	SchoolBiologia:         {},
	SchoolElectronica:      {},
	SchoolEstadistica:      {},
	SchoolCivil:            {},
	SchoolArquitectura:     {},
}

// ParseSchool validates a raw category value against the closed school set.
// The general-information bucket is not directly selectable: it is always
// merged into catalog lookups instead.
func ParseSchool(raw string) (School, error) {
	s := School(raw)
	if _, ok := knownSchools[s]; !ok {
		return "", WrapError(ErrInvalidSchool, "parse school", fmt.Errorf("%q", raw))
	}
	return s, nil
}

func (s School) String() string {
	return string(s)
}

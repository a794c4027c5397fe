package main

/*
#include "views.h"
*/
import "C"

import "unsafe"

//export HM2_GetSupportedResourceTypes
func HM2_GetSupportedResourceTypes() *C.struct_ResourceTypesArray {
	return hm2.supportedTypes()
}

//export HM2_FreeSupportedResourceTypes
func HM2_FreeSupportedResourceTypes(arr *C.struct_ResourceTypesArray) {
	hm2.freeSupportedTypes(arr)
}

//export HM2_IsResourceTypeSupported
func HM2_IsResourceTypeSupported(resourceType *C.char) C.bool {
	return C.bool(hm2.lib.IsResourceTypeSupported(goString(resourceType)))
}

//export HM2_ConvertResourceToJson
func HM2_ConvertResourceToJson(resourceType *C.char, data unsafe.Pointer, size C.size_t) *C.struct_JsonString {
	buf, ok := borrow(data, size)
	if !ok {
		return nil
	}
	return hm2.convert(goString(resourceType), buf)
}

//export HM2_GenerateResourceFromJson
func HM2_GenerateResourceFromJson(resourceType *C.char, json *C.char, jsonSize C.size_t, simple C.bool) *C.struct_ResourceMem {
	doc, ok := borrow(unsafe.Pointer(json), jsonSize)
	if !ok {
		return nil
	}
	return hm2.generate(goString(resourceType), doc, bool(simple))
}

//export HM2_FreeJsonString
func HM2_FreeJsonString(js *C.struct_JsonString) {
	hm2.freeJSONString(js)
}

//export HM2_FreeResourceMem
func HM2_FreeResourceMem(mem *C.struct_ResourceMem) {
	hm2.freeResourceMem(mem)
}

//export HM2_GameStructToJson
func HM2_GameStructToJson(structType *C.char, data unsafe.Pointer, size C.size_t) *C.struct_JsonString {
	buf, ok := borrow(data, size)
	if !ok {
		return nil
	}
	return hm2.gameStructToJSON(goString(structType), buf)
}

//export HM2_JsonToGameStruct
func HM2_JsonToGameStruct(structType *C.char, json *C.char, jsonSize C.size_t, target unsafe.Pointer, targetSize C.size_t) C.bool {
	doc, ok := borrow(unsafe.Pointer(json), jsonSize)
	if !ok {
		return false
	}
	buf, ok := borrow(target, targetSize)
	if !ok {
		return false
	}
	return C.bool(hm2.jsonToGameStruct(goString(structType), doc, buf))
}

//export HM2_GetPropertyName
func HM2_GetPropertyName(id C.uint32_t) C.struct_StringView {
	return hm2.propertyName(uint32(id))
}

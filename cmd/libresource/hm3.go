package main

/*
#include "views.h"
*/
import "C"

import "unsafe"

//export HM3_GetSupportedResourceTypes
func HM3_GetSupportedResourceTypes() *C.struct_ResourceTypesArray {
	return hm3.supportedTypes()
}

//export HM3_FreeSupportedResourceTypes
func HM3_FreeSupportedResourceTypes(arr *C.struct_ResourceTypesArray) {
	hm3.freeSupportedTypes(arr)
}

//export HM3_IsResourceTypeSupported
func HM3_IsResourceTypeSupported(resourceType *C.char) C.bool {
	return C.bool(hm3.lib.IsResourceTypeSupported(goString(resourceType)))
}

//export HM3_ConvertResourceToJson
func HM3_ConvertResourceToJson(resourceType *C.char, data unsafe.Pointer, size C.size_t) *C.struct_JsonString {
	buf, ok := borrow(data, size)
	if !ok {
		return nil
	}
	return hm3.convert(goString(resourceType), buf)
}

//export HM3_GenerateResourceFromJson
func HM3_GenerateResourceFromJson(resourceType *C.char, json *C.char, jsonSize C.size_t, simple C.bool) *C.struct_ResourceMem {
	doc, ok := borrow(unsafe.Pointer(json), jsonSize)
	if !ok {
		return nil
	}
	return hm3.generate(goString(resourceType), doc, bool(simple))
}

//export HM3_FreeJsonString
func HM3_FreeJsonString(js *C.struct_JsonString) {
	hm3.freeJSONString(js)
}

//export HM3_FreeResourceMem
func HM3_FreeResourceMem(mem *C.struct_ResourceMem) {
	hm3.freeResourceMem(mem)
}

//export HM3_GameStructToJson
func HM3_GameStructToJson(structType *C.char, data unsafe.Pointer, size C.size_t) *C.struct_JsonString {
	buf, ok := borrow(data, size)
	if !ok {
		return nil
	}
	return hm3.gameStructToJSON(goString(structType), buf)
}

//export HM3_JsonToGameStruct
func HM3_JsonToGameStruct(structType *C.char, json *C.char, jsonSize C.size_t, target unsafe.Pointer, targetSize C.size_t) C.bool {
	doc, ok := borrow(unsafe.Pointer(json), jsonSize)
	if !ok {
		return false
	}
	buf, ok := borrow(target, targetSize)
	if !ok {
		return false
	}
	return C.bool(hm3.jsonToGameStruct(goString(structType), doc, buf))
}

//export HM3_GetPropertyName
func HM3_GetPropertyName(id C.uint32_t) C.struct_StringView {
	return hm3.propertyName(uint32(id))
}
